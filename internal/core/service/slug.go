package service

import (
	"crypto/rand"
	"fmt"
	"strings"
	"unicode"
)

// slugify derives a URL-friendly slug from a job title: lowercased, with
// every run of non-alphanumeric characters collapsed to a single hyphen.
func slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// disambiguateSlug appends a short random suffix so a colliding slug can
// be retried without overwriting the existing job.
func disambiguateSlug(slug string) string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return slug + "-1"
	}
	return fmt.Sprintf("%s-%x", slug, buf)
}
