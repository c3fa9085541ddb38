package database

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9]+`)
	maxSlugLength  = 120
	diacriticsFold = strings.NewReplacer("ß", "ss", "æ", "ae", "ø", "o", "œ", "oe", "đ", "d", "ł", "l")
)

// ValidSlug reports whether s is a lowercase, hyphen separated identifier
// usable both as a URL segment and as a filename stem.
func ValidSlug(s string) bool {
	return len(s) <= maxSlugLength && slugPattern.MatchString(s)
}

// Slugify derives a slug from a display name: "Carrara Marble 60×60" becomes
// "carrara-marble-60-60".
func Slugify(name string) string {
	decomposed := norm.NFKD.String(strings.ToLower(strings.TrimSpace(name)))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range diacriticsFold.Replace(decomposed) {
		// Drop combining marks left over from decomposition.
		if r >= 0x0300 && r <= 0x036f {
			continue
		}
		b.WriteRune(r)
	}
	slug := strings.Trim(nonSlugChars.ReplaceAllString(b.String(), "-"), "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}
