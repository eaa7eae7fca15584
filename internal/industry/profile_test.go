package industry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scout/internal/industry"
)

func TestProfile_PromptContext(t *testing.T) {
	t.Parallel()

	p, err := industry.Parse("law_firms", []byte(lawFirmsYAML))
	require.NoError(t, err)

	want := "INDUSTRY: Law Firms\n" +
		"ANALYSIS FOCUS: Credibility and clarity of practice areas\n\n" +
		"COMMON PAIN POINTS IN THIS VERTICAL:\n" +
		"  - Outdated website design\n" +
		"  - No online booking\n" +
		"  - Slow page loads\n" +
		"  - Missing practice area pages\n\n" +
		"KEY TRUST SIGNALS CLIENTS LOOK FOR:\n" +
		"  - Bar association badges\n" +
		"  - Client testimonials\n" +
		"  - Case results\n\n" +
		"HIGH PRIORITY RED FLAGS TO DETECT:\n" +
		"  - Slow website\n" +
		"  - Missing SSL certificate\n" +
		"  - No contact form"

	assert.Equal(t, want, p.PromptContext())
}

func TestProfile_RuntimeAdditions(t *testing.T) {
	t.Parallel()

	p := &industry.Profile{
		SearchKeywords:  []string{"a"},
		CustomKeywords:  []string{"b"},
		Locations:       []string{"x"},
		CustomLocations: []string{"y", "z"},
	}

	assert.Equal(t, []string{"a", "b"}, p.AllKeywords())
	assert.Equal(t, []string{"x", "y", "z"}, p.AllLocations())
	assert.Equal(t, []string{"a"}, p.SearchKeywords)
}

func TestProfile_Indicators(t *testing.T) {
	t.Parallel()

	p, err := industry.Parse("law_firms", []byte(lawFirmsYAML))
	require.NoError(t, err)

	assert.Len(t, p.Indicators(industry.BucketHigh), 4)
	assert.Equal(t, []string{"Outdated design"}, p.Indicators(industry.BucketMedium))
	assert.Equal(t, []string{"No blog"}, p.Indicators(industry.BucketLow))
	assert.Nil(t, p.Indicators("urgent"))
}
