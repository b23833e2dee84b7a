package api

import (
	"database/sql"
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// sanitize strips HTML tags and surrounding whitespace from user text.
// Upstream request validation has already bounded lengths; this is the last
// filter before the write path.
func sanitize(input string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(input, ""))
}

func sanitizePtr(input *string) *string {
	if input == nil {
		return nil
	}
	s := sanitize(*input)
	return &s
}

func setNullString(dst *sql.NullString, src *string) {
	if src != nil {
		dst.String, dst.Valid = *src, true
	}
}
