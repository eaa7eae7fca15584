package contact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/scout/internal/contact"
)

func TestFindEmails(t *testing.T) {
	t.Parallel()

	html := `<a href="mailto:hello@acme.com">Write to us</a>
		<p>Sales: info@other.com or HELLO@acme.com</p>
		<img src="/img/logo@2x.png">
		<footer>hello@acme.com</footer>`

	assert.Equal(t, []string{"hello@acme.com", "info@other.com"}, contact.FindEmails(html))
}

func TestFindEmails_MailtoFirst(t *testing.T) {
	t.Parallel()

	html := `<p>owner@acme.com</p><a href="mailto:desk@acme.com">desk</a>`

	assert.Equal(t, []string{"desk@acme.com", "owner@acme.com"}, contact.FindEmails(html))
}

func TestPickBusinessEmail(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		emails []string
		host   string
		want   string
	}{
		{"own domain preferred", []string{"info@other.com", "hello@target.com"}, "target.com", "hello@target.com"},
		{"www host", []string{"info@other.com", "hello@target.com"}, "www.target.com", "hello@target.com"},
		{"subdomain mailbox", []string{"team@mail.target.co.uk"}, "www.target.co.uk", "team@mail.target.co.uk"},
		{"non generic fallback", []string{"me@gmail.com", "sales@vendor.io"}, "acme.com", "sales@vendor.io"},
		{"only generic", []string{"me@gmail.com", "you@hotmail.com"}, "acme.com", ""},
		{"none", nil, "acme.com", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, contact.PickBusinessEmail(tc.emails, tc.host))
		})
	}
}
