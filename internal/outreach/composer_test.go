package outreach_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scout/internal/domain"
	"github.com/jonesrussell/scout/internal/outreach"
)

func TestSubject(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   outreach.Input
		want string
	}{
		{"slow load wins", outreach.Input{LoadTime: 4.5, Score: 10, CompanyName: "Acme", Domain: "acme.com"}, "acme.com takes 4.5s to load"},
		{"follow up for high priority", outreach.Input{Score: 9, CompanyName: "Acme", LoadTime: 1.2, Domain: "acme.com"}, "Re: Acme's website"},
		{"exactly three seconds is not slow", outreach.Input{Score: 8, CompanyName: "Acme", LoadTime: 3.0}, "Re: Acme's website"},
		{"named", outreach.Input{Score: 7, CompanyName: "Acme", Domain: "acme.com"}, "Quick question about Acme's website"},
		{"generic", outreach.Input{Score: 10, Domain: "acme.com"}, "Quick feedback on acme.com"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, outreach.Subject(tc.in))
		})
	}
}

func TestComposer_Compose_Tiers(t *testing.T) {
	t.Parallel()

	composer := outreach.NewComposer(outreach.Config{SenderName: "Alex", SenderCompany: "North Cloud"})

	testCases := []struct {
		name     string
		in       outreach.Input
		wantTier domain.ContactTier
		greeting string
		mentions string
	}{
		{
			name:     "tier one",
			in:       outreach.Input{FirstName: "Marie", CompanyName: "Lux Design", Domain: "lux.ca", SpecificIssue: "no SSL", Insight: "Lead with results."},
			wantTier: domain.TierNamed,
			greeting: "Hi Marie,",
			mentions: "Lux Design's website (lux.ca) and noticed no SSL.",
		},
		{
			name:     "tier two",
			in:       outreach.Input{CompanyName: "Lux Design", Domain: "lux.ca", SpecificIssue: "no SSL", Insight: "Lead with results."},
			wantTier: domain.TierCompany,
			greeting: "Hello,",
			mentions: "I came across Lux Design",
		},
		{
			name:     "tier three ignores first name without company",
			in:       outreach.Input{FirstName: "Marie", Domain: "lux.ca", Insight: "Lead with results."},
			wantTier: domain.TierGeneric,
			greeting: "Hi there,",
			mentions: "I was browsing lux.ca and noticed " + outreach.DefaultIssue + ".",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			email, err := composer.Compose(tc.in)
			require.NoError(t, err)

			assert.Equal(t, tc.wantTier, email.Tier)
			assert.Contains(t, email.Body, tc.greeting)
			assert.Contains(t, email.Body, tc.mentions)
			assert.Contains(t, email.Body, "Lead with results.")
			assert.Contains(t, email.Body, "Alex\nNorth Cloud")
			assert.NotContains(t, email.Body, "{{")
		})
	}
}

func TestEmail_String(t *testing.T) {
	t.Parallel()

	e := outreach.Email{Subject: "Quick feedback on acme.com", Body: "Hi there,\n"}
	assert.Equal(t, "Subject: Quick feedback on acme.com\n\nHi there,\n", e.String())
}

func TestSpecificIssue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, outreach.DefaultIssue, outreach.SpecificIssue(nil))
	assert.Equal(t, "no SSL", outreach.SpecificIssue([]string{"no SSL", "no email found"}))
}
