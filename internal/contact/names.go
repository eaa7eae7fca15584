package contact

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

const maxHeadingCompanyRunes = 60

// titleSeparators split a page title into brand and tagline.
var titleSeparators = []string{" | ", " — ", " - ", " :: ", " » "}

// introPatterns are tried in order against raw markup; the first group is the name.
// They expect NFC input so accented letters are single runes.
var introPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:I(?:'m| am)|My name is|About|Hi,?\s+I(?:'m| am))\s+(\p{Lu}\p{Ll}{1,20})`),
	regexp.MustCompile(`(?:Founder|Owner|Principal|Director|Propriétaire|Fondateur(?:trice)?),?\s+(\p{Lu}\p{Ll}{1,20})`),
	regexp.MustCompile(`(?:Meet\s+)(\p{Lu}\p{Ll}{1,20})\s+(?:\p{Lu}\p{Ll}+)`),
}

// CompanyName resolves a business name from og:site_name, then the title,
// then the first heading.
func CompanyName(doc *goquery.Document) string {
	if siteName, ok := doc.Find(`meta[property="og:site_name"]`).First().Attr("content"); ok {
		if name := strings.TrimSpace(siteName); name != "" {
			return name
		}
	}

	if title := trimTitle(doc.Find("title").First().Text()); title != "" {
		return title
	}

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		return truncateRunes(collapseSpace(h1.Text()), maxHeadingCompanyRunes)
	}

	return ""
}

func trimTitle(raw string) string {
	title := strings.TrimSpace(raw)
	cut := len(title)
	for _, sep := range titleSeparators {
		if i := strings.Index(title, sep); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(title[:cut])
}

// FirstName looks for a self-introduction in html, then for structured
// person markup in doc.
func FirstName(html string, doc *goquery.Document) string {
	html = norm.NFC.String(html)
	for _, pattern := range introPatterns {
		m := pattern.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		if candidate := strings.TrimSpace(m[1]); utf8.RuneCountInString(candidate) >= 2 && isAlpha(candidate) {
			return candidate
		}
	}

	if doc == nil {
		return ""
	}

	fields := strings.Fields(norm.NFC.String(doc.Find(`[itemprop="name"]`).First().Text()))
	if len(fields) == 0 {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(fields[0])
	if unicode.IsUpper(first) {
		return fields[0]
	}
	return ""
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
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
