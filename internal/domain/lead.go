package domain

import "time"

type LeadStatus string

const (
	LeadNew         LeadStatus = "NEW"
	LeadContacted   LeadStatus = "CONTACTED"
	LeadInterested  LeadStatus = "INTERESTED"
	LeadNegotiation LeadStatus = "NEGOTIATION"
	LeadConverted   LeadStatus = "CONVERTED"
	LeadLost        LeadStatus = "LOST"
)

func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadInterested, LeadNegotiation, LeadConverted, LeadLost:
		return true
	}

	return false
}

type Lead struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Status    LeadStatus `json:"status"`
	Source    string     `json:"source"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsTerminal reports whether the lead has reached CONVERTED, after
// which no further mutation is accepted.
func (l Lead) IsTerminal() bool {
	return l.Status == LeadConverted
}
