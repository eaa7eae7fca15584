package fetcher

import "strings"

const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"
)

// NormalizeURL prepends https:// to targets that carry no scheme.
func NormalizeURL(target string) string {
	t := strings.TrimSpace(target)
	lower := strings.ToLower(t)
	if strings.HasPrefix(lower, schemeHTTP) || strings.HasPrefix(lower, schemeHTTPS) {
		return t
	}
	return schemeHTTPS + t
}

// DomainOf strips the scheme from rawURL and returns everything before the first slash.
func DomainOf(rawURL string) string {
	d := strings.TrimSpace(rawURL)
	lower := strings.ToLower(d)
	switch {
	case strings.HasPrefix(lower, schemeHTTPS):
		d = d[len(schemeHTTPS):]
	case strings.HasPrefix(lower, schemeHTTP):
		d = d[len(schemeHTTP):]
	}
	host, _, _ := strings.Cut(d, "/")
	return host
}
