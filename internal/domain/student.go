package domain

import (
	"errors"
	"time"
)

type Plan string

const (
	PlanFull Plan = "FULL"
	PlanHalf Plan = "HALF"
)

// Amounts are integers in the academy's currency unit.
const (
	CourseCost        = 6000
	HalfPlanDeposit   = 3000
	InstallmentAmount = 1000
)

type InstallmentStatus string

const (
	InstallmentUnpaid   InstallmentStatus = "UNPAID"
	InstallmentPending  InstallmentStatus = "PENDING"
	InstallmentPaid     InstallmentStatus = "PAID"
	InstallmentRejected InstallmentStatus = "REJECTED"
)

type InstallmentSlot string

const (
	SlotInst1 InstallmentSlot = "inst1"
	SlotInst2 InstallmentSlot = "inst2"
	SlotInst3 InstallmentSlot = "inst3"
)

var (
	ErrUnknownSlot       = errors.New("unknown installment slot")
	ErrNotReviewable     = errors.New("installment is not pending review")
	ErrSlotPendingReview = errors.New("installment is pending review")
	ErrSlotNotTogglable  = errors.New("installment can only be toggled between paid and unpaid")
	ErrInvalidDecision   = errors.New("decision must be accept or reject")
)

type ReviewDecision string

const (
	DecisionAccept ReviewDecision = "accept"
	DecisionReject ReviewDecision = "reject"
)

// Installment is one fixed payment tranche under the HALF plan.
type Installment struct {
	Status   InstallmentStatus `json:"status"`
	ProofURL string            `json:"proof_url,omitempty"`
	PaidAt   *time.Time        `json:"paid_at,omitempty"`
}

// Upload submits a payment proof and moves the slot to PENDING. Legal
// from any prior state: a fresh upload replaces a rejected proof, and
// re-uploading over an already pending slot simply swaps the proof.
func (i *Installment) Upload(proofURL string) {
	i.Status = InstallmentPending
	i.ProofURL = proofURL
	i.PaidAt = nil
}

// Review settles a PENDING slot. Accept stamps PaidAt; reject keeps the
// proof visible so the student can see what was turned down.
func (i *Installment) Review(decision ReviewDecision, now time.Time) error {
	if i.Status != InstallmentPending {
		return ErrNotReviewable
	}

	switch decision {
	case DecisionAccept:
		i.Status = InstallmentPaid
		paidAt := now
		i.PaidAt = &paidAt
	case DecisionReject:
		i.Status = InstallmentRejected
	default:
		return ErrInvalidDecision
	}

	return nil
}

// Toggle is the administrative override outside the proof-review flow.
// It flips PAID to UNPAID and back without inspecting any proof. Slots
// awaiting review or holding a rejected proof must go through Review or
// a fresh Upload instead.
func (i *Installment) Toggle(now time.Time) error {
	switch i.Status {
	case InstallmentPaid:
		i.Status = InstallmentUnpaid
		i.PaidAt = nil
	case InstallmentUnpaid:
		i.Status = InstallmentPaid
		paidAt := now
		i.PaidAt = &paidAt
	case InstallmentPending:
		return ErrSlotPendingReview
	default:
		return ErrSlotNotTogglable
	}

	return nil
}

type Installments struct {
	Inst1 Installment `json:"inst1"`
	Inst2 Installment `json:"inst2"`
	Inst3 Installment `json:"inst3"`
}

// NewInstallments returns the three slots of a freshly enrolled student,
// all UNPAID.
func NewInstallments() Installments {
	unpaid := Installment{Status: InstallmentUnpaid}

	return Installments{Inst1: unpaid, Inst2: unpaid, Inst3: unpaid}
}

func (ins *Installments) Slot(slot InstallmentSlot) (*Installment, error) {
	switch slot {
	case SlotInst1:
		return &ins.Inst1, nil
	case SlotInst2:
		return &ins.Inst2, nil
	case SlotInst3:
		return &ins.Inst3, nil
	default:
		return nil, ErrUnknownSlot
	}
}

func (ins Installments) All() []Installment {
	return []Installment{ins.Inst1, ins.Inst2, ins.Inst3}
}

func (ins Installments) count(status InstallmentStatus) int {
	n := 0
	for _, inst := range ins.All() {
		if inst.Status == status {
			n++
		}
	}

	return n
}

type Student struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	Plan         Plan         `json:"plan"`
	Installments Installments `json:"installments"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// PaymentSummary is the derived financial position of one student.
type PaymentSummary struct {
	Paid      int  `json:"paid"`
	Pending   int  `json:"pending"`
	Remaining int  `json:"remaining"`
	FullyPaid bool `json:"fully_paid"`
}

// Payments derives the student's financial position. A FULL plan is
// fully paid by definition regardless of slot contents. A HALF plan is
// the fixed deposit plus one tranche per PAID slot; PENDING tranches
// are reported but never counted as paid.
func (s Student) Payments() PaymentSummary {
	if s.Plan == PlanFull {
		return PaymentSummary{Paid: CourseCost, Remaining: 0, FullyPaid: true}
	}

	paid := HalfPlanDeposit + InstallmentAmount*s.Installments.count(InstallmentPaid)

	return PaymentSummary{
		Paid:      paid,
		Pending:   InstallmentAmount * s.Installments.count(InstallmentPending),
		Remaining: CourseCost - paid,
		FullyPaid: CourseCost-paid == 0,
	}
}

// PendingReviews counts slots currently awaiting an accept/reject
// decision, used to surface the admin review workload.
func (s Student) PendingReviews() int {
	if s.Plan == PlanFull {
		return 0
	}

	return s.Installments.count(InstallmentPending)
}
