package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/scout/internal/domain"
)

func TestContactInfo_Tier(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		contact domain.ContactInfo
		want    domain.ContactTier
	}{
		{"name and company", domain.ContactInfo{FirstName: "Jane", CompanyName: "Acme"}, domain.TierNamed},
		{"company only", domain.ContactInfo{CompanyName: "Acme"}, domain.TierCompany},
		{"name only", domain.ContactInfo{FirstName: "Jane"}, domain.TierGeneric},
		{"nothing", domain.ContactInfo{Email: "a@b.com"}, domain.TierGeneric},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.contact.Tier())
		})
	}
}

func TestAuditRecord_HighPriority(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.AuditRecord{Status: domain.StatusOK, FinalScore: 8}.HighPriority())
	assert.False(t, domain.AuditRecord{Status: domain.StatusOK, FinalScore: 7}.HighPriority())
	assert.False(t, domain.AuditRecord{Status: domain.StatusFailed, FinalScore: 10}.HighPriority())
}
