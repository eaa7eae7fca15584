package industry_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scout/internal/industry"
)

func TestNormalizeSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "plumbers", want: "plumbers"},
		{name: "spaces and case", input: "  Law Firms ", want: "law_firms"},
		{name: "hyphen", input: "hvac-repair", want: "hvac-repair"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "traversal", input: "../etc", wantErr: true},
		{name: "separator", input: "a/b", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
		{name: "leading dot", input: ".hidden", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 65), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := industry.NormalizeSlug(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, industry.ErrInvalidSlug)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_Create(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	catalog := industry.NewCatalog(dir)

	p, err := catalog.Create("Law Firms", []byte(lawFirmsYAML))
	require.NoError(t, err)
	assert.Equal(t, "Law Firms", p.Name)

	raw, err := catalog.Raw("law_firms")
	require.NoError(t, err)
	assert.Equal(t, lawFirmsYAML, string(raw))

	_, err = catalog.Create("law_firms", []byte(lawFirmsYAML))
	require.ErrorIs(t, err, industry.ErrExists)
}

func TestCatalog_Create_ExistingYmlFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProfile(t, dir, "law_firms.yml", lawFirmsYAML)

	_, err := industry.NewCatalog(dir).Create("law_firms", []byte(lawFirmsYAML))
	require.ErrorIs(t, err, industry.ErrExists)
}

func TestCatalog_Create_RejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		slug   string
		body   string
		target error
	}{
		{name: "bad slug", slug: "../law_firms", body: lawFirmsYAML, target: industry.ErrInvalidSlug},
		{name: "malformed", slug: "law_firms", body: "name: [unclosed\n", target: industry.ErrMalformed},
		{name: "slug mismatch", slug: "lawyers", body: lawFirmsYAML, target: industry.ErrSlugMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			_, err := industry.NewCatalog(dir).Create(tt.slug, []byte(tt.body))
			require.ErrorIs(t, err, tt.target)

			entries, readErr := os.ReadDir(dir)
			require.NoError(t, readErr)
			assert.Empty(t, entries)
		})
	}
}

func TestCatalog_Create_MissingFields(t *testing.T) {
	t.Parallel()

	_, err := industry.NewCatalog(t.TempDir()).Create("partial", []byte("name: Partial\nslug: partial\n"))

	var vErr *industry.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Missing, "search_keywords")
}

func TestCatalog_Update(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProfile(t, dir, "law_firms.yaml", lawFirmsYAML)
	catalog := industry.NewCatalog(dir)

	updated := strings.Replace(lawFirmsYAML, "name: Law Firms", "name: Legal Practices", 1)
	p, err := catalog.Update("law_firms", []byte(updated))
	require.NoError(t, err)
	assert.Equal(t, "Legal Practices", p.Name)

	loaded, err := catalog.Load("law_firms", industry.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Legal Practices", loaded.Name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCatalog_Update_ValidatesBeforeWriting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProfile(t, dir, "law_firms.yaml", lawFirmsYAML)
	catalog := industry.NewCatalog(dir)

	_, err := catalog.Update("law_firms", []byte("name: Law Firms\nslug: law_firms\n"))
	var vErr *industry.ValidationError
	require.ErrorAs(t, err, &vErr)

	raw, err := os.ReadFile(filepath.Join(dir, "law_firms.yaml"))
	require.NoError(t, err)
	assert.Equal(t, lawFirmsYAML, string(raw))
}

func TestCatalog_Update_NotFound(t *testing.T) {
	t.Parallel()

	_, err := industry.NewCatalog(t.TempDir()).Update("law_firms", []byte(lawFirmsYAML))
	require.ErrorIs(t, err, industry.ErrNotFound)
}

func TestCatalog_Delete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProfile(t, dir, "law_firms.yaml", lawFirmsYAML)
	catalog := industry.NewCatalog(dir)

	require.NoError(t, catalog.Delete("law_firms"))
	require.ErrorIs(t, catalog.Delete("law_firms"), industry.ErrNotFound)
	require.ErrorIs(t, catalog.Delete("../law_firms"), industry.ErrNotFound)
}
