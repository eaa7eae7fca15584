package domain

// LoadTimeUnavailable marks a FetchResult whose request never completed.
const LoadTimeUnavailable = -1.0

// FetchResult is the outcome of a single timed GET against a target.
type FetchResult struct {
	StatusCode int     `json:"status_code"`
	LoadTime   float64 `json:"load_time_sec"`
	Valid      bool    `json:"valid"`
	HTML       string  `json:"-"`
	FinalURL   string  `json:"final_url"`
	HasSSL     bool    `json:"has_ssl"`
	Err        string  `json:"error,omitempty"`
}
