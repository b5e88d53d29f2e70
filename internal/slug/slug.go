package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds every generated slug, suffix included.
const MaxLength = 64

// Unique gives up after this many suffix attempts.
const maxAttempts = 100

// ErrExhausted is returned when no free slug was found within the retry bound.
var ErrExhausted = errors.New("slug could not be made unique")

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphens  = regexp.MustCompile(`-+`)
)

// Turkish characters that survive unicode decomposition untouched.
var turkishFold = strings.NewReplacer(
	"ı", "i",
	"İ", "i",
	"ş", "s",
	"ğ", "g",
)

// Make turns a display title into a URL-safe token: lowercase, diacritics
// folded to ASCII, non-alphanumeric runs collapsed to single hyphens, trimmed
// and cut to MaxLength. An empty result falls back to the given token.
func Make(title, fallback string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = turkishFold.Replace(s)

	// Strip combining marks left over from NFD decomposition (é -> e, ç -> c).
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > MaxLength {
		s = strings.Trim(s[:MaxLength], "-")
	}
	if s == "" {
		return fallback
	}
	return s
}

// TakenFunc reports whether a candidate slug is already in use.
type TakenFunc func(ctx context.Context, slug string) (bool, error)

// Unique tries base, then base-2, base-3, ... until taken reports a free
// candidate or the retry ceiling is hit. The suffix never pushes the
// candidate past MaxLength; the base is trimmed instead.
func Unique(ctx context.Context, base string, taken TakenFunc) (string, error) {
	candidate := base
	for i := 1; i <= maxAttempts; i++ {
		inUse, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("slug lookup failed: %w", err)
		}
		if !inUse {
			return candidate, nil
		}
		suffix := fmt.Sprintf("-%d", i+1)
		candidate = trimForSuffix(base, len(suffix)) + suffix
	}
	return "", ErrExhausted
}

func trimForSuffix(base string, suffixLen int) string {
	keep := MaxLength - suffixLen
	if keep < 1 {
		keep = 1
	}
	if len(base) > keep {
		base = base[:keep]
	}
	return strings.TrimRight(base, "-")
}
