package insight

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxPartRunes = 200
	maxBodyRunes = 400
)

var heroParts = []struct {
	selector string
	label    string
}{
	{"h1", "H1"},
	{"h2", "H2"},
	{"p", "P"},
}

// HeroExcerpt returns the labelled first h1, h2 and paragraph of html, or the
// start of the body text when none of them has text. The result is empty
// when the page has no text at all.
func HeroExcerpt(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript, template").Remove()

	var parts []string
	for _, part := range heroParts {
		text := collapseSpace(doc.Find(part.selector).First().Text())
		if text != "" {
			parts = append(parts, part.label+": "+truncateRunes(text, maxPartRunes))
		}
	}

	if len(parts) == 0 {
		if body := collapseSpace(doc.Find("body").First().Text()); body != "" {
			parts = append(parts, "Body: "+truncateRunes(body, maxBodyRunes))
		}
	}

	return strings.Join(parts, "\n")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
