package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallment_Upload(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		inst  Installment
		proof string
	}{
		{"from unpaid", Installment{Status: InstallmentUnpaid}, "proof-1"},
		{"re-upload over rejected", Installment{Status: InstallmentRejected, ProofURL: "old"}, "proof-2"},
		{"re-upload over pending swaps proof", Installment{Status: InstallmentPending, ProofURL: "old"}, "proof-3"},
		{"upload over paid clears paid_at", Installment{Status: InstallmentPaid, PaidAt: &now}, "proof-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.inst.Upload(tt.proof)

			assert.Equal(t, InstallmentPending, tt.inst.Status)
			assert.Equal(t, tt.proof, tt.inst.ProofURL)
			assert.Nil(t, tt.inst.PaidAt)
		})
	}
}

func TestInstallment_Review(t *testing.T) {
	now := time.Now()

	t.Run("accept stamps paid_at", func(t *testing.T) {
		inst := Installment{Status: InstallmentPending, ProofURL: "proof"}

		require.NoError(t, inst.Review(DecisionAccept, now))

		assert.Equal(t, InstallmentPaid, inst.Status)
		require.NotNil(t, inst.PaidAt)
		assert.Equal(t, now, *inst.PaidAt)
	})

	t.Run("reject keeps the proof visible", func(t *testing.T) {
		inst := Installment{Status: InstallmentPending, ProofURL: "proof"}

		require.NoError(t, inst.Review(DecisionReject, now))

		assert.Equal(t, InstallmentRejected, inst.Status)
		assert.Equal(t, "proof", inst.ProofURL)
		assert.Nil(t, inst.PaidAt)
	})

	t.Run("only pending is reviewable", func(t *testing.T) {
		for _, status := range []InstallmentStatus{InstallmentUnpaid, InstallmentPaid, InstallmentRejected} {
			inst := Installment{Status: status}
			assert.ErrorIs(t, inst.Review(DecisionAccept, now), ErrNotReviewable)
		}
	})

	t.Run("unknown decision", func(t *testing.T) {
		inst := Installment{Status: InstallmentPending}
		assert.ErrorIs(t, inst.Review("maybe", now), ErrInvalidDecision)
	})
}

func TestInstallment_Toggle(t *testing.T) {
	now := time.Now()

	t.Run("paid to unpaid", func(t *testing.T) {
		inst := Installment{Status: InstallmentPaid, PaidAt: &now}

		require.NoError(t, inst.Toggle(now))

		assert.Equal(t, InstallmentUnpaid, inst.Status)
		assert.Nil(t, inst.PaidAt)
	})

	t.Run("unpaid to paid", func(t *testing.T) {
		inst := Installment{Status: InstallmentUnpaid}

		require.NoError(t, inst.Toggle(now))

		assert.Equal(t, InstallmentPaid, inst.Status)
		require.NotNil(t, inst.PaidAt)
	})

	t.Run("pending is blocked", func(t *testing.T) {
		inst := Installment{Status: InstallmentPending}
		assert.ErrorIs(t, inst.Toggle(now), ErrSlotPendingReview)
	})

	t.Run("rejected is blocked", func(t *testing.T) {
		inst := Installment{Status: InstallmentRejected}
		assert.ErrorIs(t, inst.Toggle(now), ErrSlotNotTogglable)
	})
}

func TestInstallments_Slot(t *testing.T) {
	ins := NewInstallments()

	for _, slot := range []InstallmentSlot{SlotInst1, SlotInst2, SlotInst3} {
		inst, err := ins.Slot(slot)
		require.NoError(t, err)
		assert.Equal(t, InstallmentUnpaid, inst.Status)
	}

	_, err := ins.Slot("inst4")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestStudent_Payments(t *testing.T) {
	tests := []struct {
		name    string
		student Student
		want    PaymentSummary
	}{
		{
			name:    "full plan is fully paid regardless of slots",
			student: Student{Plan: PlanFull, Installments: NewInstallments()},
			want:    PaymentSummary{Paid: 6000, Pending: 0, Remaining: 0, FullyPaid: true},
		},
		{
			name:    "half plan with no installments",
			student: Student{Plan: PlanHalf, Installments: NewInstallments()},
			want:    PaymentSummary{Paid: 3000, Pending: 0, Remaining: 3000, FullyPaid: false},
		},
		{
			name: "half plan counts paid slots only",
			student: Student{Plan: PlanHalf, Installments: Installments{
				Inst1: Installment{Status: InstallmentPaid},
				Inst2: Installment{Status: InstallmentPending},
				Inst3: Installment{Status: InstallmentRejected},
			}},
			want: PaymentSummary{Paid: 4000, Pending: 1000, Remaining: 2000, FullyPaid: false},
		},
		{
			name: "half plan fully paid",
			student: Student{Plan: PlanHalf, Installments: Installments{
				Inst1: Installment{Status: InstallmentPaid},
				Inst2: Installment{Status: InstallmentPaid},
				Inst3: Installment{Status: InstallmentPaid},
			}},
			want: PaymentSummary{Paid: 6000, Pending: 0, Remaining: 0, FullyPaid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.student.Payments())
		})
	}
}

func TestStudent_PendingReviews(t *testing.T) {
	full := Student{Plan: PlanFull, Installments: Installments{
		Inst1: Installment{Status: InstallmentPending},
	}}
	assert.Equal(t, 0, full.PendingReviews())

	half := Student{Plan: PlanHalf, Installments: Installments{
		Inst1: Installment{Status: InstallmentPending},
		Inst2: Installment{Status: InstallmentPending},
		Inst3: Installment{Status: InstallmentPaid},
	}}
	assert.Equal(t, 2, half.PendingReviews())
}
