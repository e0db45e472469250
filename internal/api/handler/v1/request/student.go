package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/acadflow/academy-api/internal/domain"
)

type CreateStudentRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Plan  string `json:"plan"`
}

func (req *CreateStudentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Phone, validation.Required, validation.Length(5, 20)),
		validation.Field(&req.Plan, validation.Required, validation.In(
			string(domain.PlanFull),
			string(domain.PlanHalf),
		)),
	)
}

type UpdateStudentRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Plan  string `json:"plan"`
}

func (req *UpdateStudentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Phone, validation.Required, validation.Length(5, 20)),
		validation.Field(&req.Plan, validation.Required, validation.In(
			string(domain.PlanFull),
			string(domain.PlanHalf),
		)),
	)
}

// UploadProofRequest carries the proof image as a URL or data URI, so
// no upper length bound is enforced.
type UploadProofRequest struct {
	ProofURL string `json:"proof_url"`
}

func (req *UploadProofRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProofURL, validation.Required),
	)
}

type ReviewProofRequest struct {
	Decision string `json:"decision"`
}

func (req *ReviewProofRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Decision, validation.Required, validation.In(
			string(domain.DecisionAccept),
			string(domain.DecisionReject),
		)),
	)
}
