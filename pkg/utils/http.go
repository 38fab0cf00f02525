// Package utils provides common utility functions.
package utils

import (
	"net/http"
	"net/url"
)

// HTTPHelper provides HTTP utility functions.
type HTTPHelper struct {
	userAgent string
}

// NewHTTPHelper creates a new HTTP helper that identifies itself as userAgent.
func NewHTTPHelper(userAgent string) *HTTPHelper {
	if userAgent == "" {
		userAgent = "neowatch/1.0"
	}

	return &HTTPHelper{userAgent: userAgent}
}

// BuildHeaders creates HTTP headers with defaults.
func (h *HTTPHelper) BuildHeaders(customHeaders map[string]string) http.Header {
	headers := http.Header{}

	// Add default headers
	headers.Set("User-Agent", h.userAgent)
	headers.Set("Accept", "application/json")

	// Add custom headers
	for key, value := range customHeaders {
		headers.Set(key, value)
	}

	return headers
}

// RedactQuery returns rawURL with the values of the named query parameters
// replaced so the URL can be logged. Unparseable input is returned as-is.
func (h *HTTPHelper) RedactQuery(rawURL string, params ...string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	q := u.Query()
	for _, p := range params {
		if q.Has(p) {
			q.Set(p, "REDACTED")
		}
	}

	u.RawQuery = q.Encode()

	return u.String()
}
