package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadStatus_IsValid(t *testing.T) {
	for _, status := range []LeadStatus{LeadNew, LeadContacted, LeadInterested, LeadNegotiation, LeadConverted, LeadLost} {
		assert.True(t, status.IsValid(), string(status))
	}

	assert.False(t, LeadStatus("ARCHIVED").IsValid())
	assert.False(t, LeadStatus("").IsValid())
}

func TestLead_IsTerminal(t *testing.T) {
	assert.True(t, Lead{Status: LeadConverted}.IsTerminal())
	assert.False(t, Lead{Status: LeadLost}.IsTerminal())
	assert.False(t, Lead{Status: LeadNew}.IsTerminal())
}
