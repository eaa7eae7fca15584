package contact_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/scout/internal/contact"
	"github.com/jonesrussell/scout/internal/logger"
)

type fakePage struct {
	status int
	body   string
	err    error
}

// fakePages serves secondary pages by path and records the order of requests.
type fakePages struct {
	mu    sync.Mutex
	pages map[string]fakePage
	calls []string
}

func (f *fakePages) Get(_ context.Context, rawURL string) (int, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, u.Path)

	page, ok := f.pages[u.Path]
	if !ok {
		return http.StatusNotFound, "", nil
	}
	return page.status, page.body, page.err
}

func (f *fakePages) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

var padding = strings.Repeat("lorem ipsum dolor ", 20)

func TestExtractor_HomepageComplete(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Acme Plumbing | Toronto</title></head>
		<body><p>Hi, I'm Marie.</p><a href="mailto:marie@acme.com">email</a></body></html>`
	pages := &fakePages{}

	info := contact.NewExtractor(logger.NewNop()).Extract(context.Background(), "https://www.acme.com", html, pages)

	assert.Equal(t, "www.acme.com", info.Domain)
	assert.Equal(t, "Acme Plumbing", info.CompanyName)
	assert.Equal(t, "marie@acme.com", info.Email)
	assert.Equal(t, "Marie", info.FirstName)
	assert.False(t, info.ContactPageFound)
	assert.Equal(t, "Email from homepage; Name from homepage", info.Notes)
	assert.Empty(t, pages.requested())
}

func TestExtractor_EscalatesToSecondaryPage(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Acme Plumbing - Toronto</title></head><body><p>Call us today.</p></body></html>`
	pages := &fakePages{pages: map[string]fakePage{
		"/contact-us": {err: errors.New("connection reset")},
		"/contactus":  {status: http.StatusOK, body: "tiny"},
		"/about":      {status: http.StatusOK, body: `<p>Hi, I'm Jane.</p><a href="mailto:jane@acme.com">mail</a>` + padding},
		"/team":       {status: http.StatusOK, body: `<p>My name is Bob.</p>` + padding},
	}}

	info := contact.NewExtractor(logger.NewNop()).Extract(context.Background(), "https://www.acme.com", html, pages)

	assert.Equal(t, "jane@acme.com", info.Email)
	assert.Equal(t, "Jane", info.FirstName)
	assert.True(t, info.ContactPageFound)
	assert.Equal(t, "Email from contact/about page; Name from contact/about page", info.Notes)
	assert.Equal(t, []string{"/contact", "/contact-us", "/contactus", "/about"}, pages.requested())
}

func TestExtractor_OnlyMissingFieldsFromSecondaryPage(t *testing.T) {
	t.Parallel()

	html := `<body><a href="mailto:office@acme.com">office</a></body>`
	pages := &fakePages{pages: map[string]fakePage{
		"/contact": {status: http.StatusOK, body: `<a href="mailto:other@acme.com">x</a><p>My name is Paul.</p>` + padding},
	}}

	info := contact.NewExtractor(logger.NewNop()).Extract(context.Background(), "https://acme.com", html, pages)

	assert.Equal(t, "office@acme.com", info.Email)
	assert.Equal(t, "Paul", info.FirstName)
	assert.Equal(t, "Email from homepage; Name from contact/about page", info.Notes)
}

func TestExtractor_NothingFound(t *testing.T) {
	t.Parallel()

	pages := &fakePages{}

	info := contact.NewExtractor(logger.NewNop()).Extract(context.Background(), "https://acme.com", `<body><p>Welcome.</p></body>`, pages)

	assert.Empty(t, info.Email)
	assert.Empty(t, info.FirstName)
	assert.Empty(t, info.CompanyName)
	assert.False(t, info.ContactPageFound)
	assert.Equal(t, contact.NoteNothingFound, info.Notes)
	assert.Equal(t, contact.SecondaryPaths, pages.requested())
}

func TestExtractor_NilPages(t *testing.T) {
	t.Parallel()

	info := contact.NewExtractor(logger.NewNop()).Extract(context.Background(), "https://acme.com", `<title>Acme</title>`, nil)

	assert.Equal(t, "Acme", info.CompanyName)
	assert.Equal(t, contact.NoteNothingFound, info.Notes)
}
