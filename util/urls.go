package util

import (
	"net/url"
	"strings"
)

// MakeUrl joins parts with exactly one slash between them. Empty parts are skipped.
func MakeUrl(parts ...string) string {
	res := ""
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		if res == "" {
			res = p
		} else {
			res += "/" + p
		}
	}
	return res
}

// EscapePath percent-encodes each segment of a slash separated path.
func EscapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
