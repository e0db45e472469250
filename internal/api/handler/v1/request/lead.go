package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/acadflow/academy-api/internal/domain"
)

var leadStatuses = []interface{}{
	string(domain.LeadNew),
	string(domain.LeadContacted),
	string(domain.LeadInterested),
	string(domain.LeadNegotiation),
	string(domain.LeadConverted),
	string(domain.LeadLost),
}

type CreateLeadRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Source string `json:"source"`
	Notes  string `json:"notes"`
}

func (req *CreateLeadRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Phone, validation.Required, validation.Length(5, 20)),
		validation.Field(&req.Source, validation.Length(0, 100)),
		validation.Field(&req.Notes, validation.Length(0, 1000)),
	)
}

type UpdateLeadRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
	Source string `json:"source"`
	Notes  string `json:"notes"`

	// ConfirmConversion gates the enrollment side effect of moving a
	// lead to CONVERTED when no student with the same phone exists yet.
	ConfirmConversion bool `json:"confirm_conversion"`
}

func (req *UpdateLeadRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Phone, validation.Required, validation.Length(5, 20)),
		validation.Field(&req.Status, validation.Required, validation.In(leadStatuses...)),
		validation.Field(&req.Source, validation.Length(0, 100)),
		validation.Field(&req.Notes, validation.Length(0, 1000)),
	)
}
