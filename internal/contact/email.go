package contact

import (
	"path"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var (
	mailtoPattern = regexp.MustCompile(`mailto:([a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,})`)
	emailPattern  = regexp.MustCompile(`\b([a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,})\b`)
)

// genericProviders are consumer mailbox domains that say nothing about the business.
var genericProviders = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"yahoo.com":      {},
	"yahoo.ca":       {},
	"yahoo.fr":       {},
	"hotmail.com":    {},
	"hotmail.fr":     {},
	"outlook.com":    {},
	"live.com":       {},
	"msn.com":        {},
	"aol.com":        {},
	"icloud.com":     {},
	"me.com":         {},
	"protonmail.com": {},
	"proton.me":      {},
	"gmx.com":        {},
	"orange.fr":      {},
	"free.fr":        {},
	"sfr.fr":         {},
	"videotron.ca":   {},
	"sympatico.ca":   {},
}

// assetSuffixes catch retina asset names such as logo@2x.png, which match the
// email pattern but are not addresses.
var assetSuffixes = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".svg":  {},
	".webp": {},
	".css":  {},
	".js":   {},
}

// FindEmails returns the addresses in html: mailto targets first, then plain
// text matches, without duplicates and in first-seen order.
func FindEmails(html string) []string {
	var out []string
	seen := make(map[string]struct{})

	add := func(matches [][]string) {
		for _, m := range matches {
			email := m[1]
			key := strings.ToLower(email)
			if _, dup := seen[key]; dup {
				continue
			}
			if _, asset := assetSuffixes[strings.ToLower(path.Ext(email))]; asset {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, email)
		}
	}

	add(mailtoPattern.FindAllStringSubmatch(html, -1))
	add(emailPattern.FindAllStringSubmatch(html, -1))

	return out
}

// PickBusinessEmail prefers an address on the site's own registrable domain,
// then any address outside the generic providers.
func PickBusinessEmail(emails []string, siteHost string) string {
	site := registrableDomain(siteHost)
	if site != "" {
		for _, email := range emails {
			if registrableDomain(emailDomain(email)) == site {
				return email
			}
		}
	}

	for _, email := range emails {
		if _, generic := genericProviders[emailDomain(email)]; !generic {
			return email
		}
	}

	return ""
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

func registrableDomain(host string) string {
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	if host == "" {
		return ""
	}
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return host
}
