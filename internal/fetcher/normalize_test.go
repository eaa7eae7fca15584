package fetcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/scout/internal/fetcher"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in, want string
	}{
		{"example.com", "https://example.com"},
		{"  example.com/path ", "https://example.com/path"},
		{"http://example.com", "http://example.com"},
		{"HTTPS://Example.com", "HTTPS://Example.com"},
		{"httpbin.org", "https://httpbin.org"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, fetcher.NormalizeURL(tc.in))
		})
	}
}

func TestDomainOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in, want string
	}{
		{"https://www.acme.com/about", "www.acme.com"},
		{"http://acme.com", "acme.com"},
		{"acme.com/x/y", "acme.com"},
		{"https://acme.com:8443/", "acme.com:8443"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, fetcher.DomainOf(tc.in))
		})
	}
}
