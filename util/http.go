package util

import (
	"net/http"
)

// Query parameters that reverse proxies or signed links commonly carry and
// that should never reach the logs.
var sensitiveQueryParams = []string{"access_token", "token", "signature", "key"}

func GetLogSafeQueryString(r *http.Request) string {
	qs := r.URL.Query()
	for _, p := range sensitiveQueryParams {
		if qs.Get(p) != "" {
			qs.Set(p, "redacted")
		}
	}
	return qs.Encode()
}

func GetLogSafeUrl(r *http.Request) string {
	safe := *r.URL
	safe.RawQuery = GetLogSafeQueryString(r)
	return safe.String()
}
