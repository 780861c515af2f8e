package util

import (
	"strings"
)

func HasAnyPrefix(val string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(val, prefix) {
			return true
		}
	}
	return false
}

// CanInline reports whether browsers should render the content type in place
// rather than download it.
func CanInline(contentType string) bool {
	return HasAnyPrefix(contentType, []string{"text/plain", "application/json", "image/png", "image/jpeg", "image/gif"})
}
