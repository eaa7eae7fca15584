// Package contact derives a business name, a contact email and a contact
// first name from a site's homepage and, when needed, from a short list of
// well-known secondary pages.
package contact

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/scout/internal/domain"
	"github.com/jonesrussell/scout/internal/logger"
)

// minSecondaryBodyLen is the body length a secondary page must exceed to count.
const minSecondaryBodyLen = 200

// Extraction notes.
const (
	NoteEmailHomepage  = "Email from homepage"
	NoteNameHomepage   = "Name from homepage"
	NoteEmailSecondary = "Email from contact/about page"
	NoteNameSecondary  = "Name from contact/about page"
	NoteNothingFound   = "No contact data found"
)

// SecondaryPaths are tried in order when the homepage leaves the email or
// first name unresolved.
var SecondaryPaths = []string{
	"/contact", "/contact-us", "/contactus",
	"/about", "/about-us", "/aboutus",
	"/team", "/our-team", "/staff",
	"/equipe", "/a-propos",
}

// PageGetter retrieves a secondary page. fetcher.Session implements it.
type PageGetter interface {
	Get(ctx context.Context, rawURL string) (status int, body string, err error)
}

// Extractor resolves ContactInfo for a target.
type Extractor struct {
	log logger.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract resolves contact data from homepageHTML and escalates to secondary
// pages through pages when the email or first name is still missing. pages may
// be nil, in which case no escalation happens.
func (e *Extractor) Extract(ctx context.Context, pageURL, homepageHTML string, pages PageGetter) domain.ContactInfo {
	base, _ := url.Parse(pageURL)
	host := ""
	if base != nil {
		host = base.Hostname()
	}

	info := domain.ContactInfo{Domain: host}
	var notes []string

	doc := parseHTML(homepageHTML)
	if doc != nil {
		info.CompanyName = CompanyName(doc)
	}

	if email := PickBusinessEmail(FindEmails(homepageHTML), host); email != "" {
		info.Email = email
		notes = append(notes, NoteEmailHomepage)
	}

	if name := FirstName(homepageHTML, doc); name != "" {
		info.FirstName = name
		notes = append(notes, NoteNameHomepage)
	}

	if (info.Email == "" || info.FirstName == "") && pages != nil && base != nil {
		if page, ok := e.findSecondaryPage(ctx, base, pages); ok {
			info.ContactPageFound = true

			if info.Email == "" {
				if email := PickBusinessEmail(FindEmails(page), host); email != "" {
					info.Email = email
					notes = append(notes, NoteEmailSecondary)
				}
			}

			if info.FirstName == "" {
				if name := FirstName(page, parseHTML(page)); name != "" {
					info.FirstName = name
					notes = append(notes, NoteNameSecondary)
				}
			}
		}
	}

	if len(notes) == 0 {
		info.Notes = NoteNothingFound
	} else {
		info.Notes = strings.Join(notes, "; ")
	}

	return info
}

// findSecondaryPage returns the body of the first secondary path that
// answers 200 with a substantial body. Errors move on to the next path.
func (e *Extractor) findSecondaryPage(ctx context.Context, base *url.URL, pages PageGetter) (string, bool) {
	for _, p := range SecondaryPaths {
		ref, err := url.Parse(p)
		if err != nil {
			continue
		}
		target := base.ResolveReference(ref).String()

		status, body, err := pages.Get(ctx, target)
		if err != nil {
			e.log.Debug("Secondary page unavailable", logger.String("url", target), logger.Error(err))
			continue
		}
		if status == http.StatusOK && len(body) > minSecondaryBodyLen {
			e.log.Debug("Secondary page found", logger.String("url", target))
			return body, true
		}
	}
	return "", false
}

func parseHTML(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return doc
}
