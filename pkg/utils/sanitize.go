package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	appErrors "sankofa/pkg/errors"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// SanitizeString trims a single-line value and escapes HTML.
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// SanitizeText is SanitizeString for free text such as message bodies,
// collection notes and volunteer motivations. Line breaks survive.
func SanitizeText(input string) string {
	return keepRunes(SanitizeString(input), func(r rune) bool {
		return unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r'
	})
}

func SanitizeEmail(email string) string {
	email = htmlTagRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(email)), "")
	return keepRunes(email, func(r rune) bool {
		return unicode.IsPrint(r) || unicode.IsSpace(r)
	})
}

// SanitizePhone keeps the characters found in Ghanaian numbers as people
// type them: digits, a leading +, spaces, dashes and brackets.
func SanitizePhone(phone string) string {
	phone = htmlTagRegex.ReplaceAllString(strings.TrimSpace(phone), "")
	return keepRunes(phone, func(r rune) bool {
		return unicode.IsDigit(r) || strings.ContainsRune("+- ()", r)
	})
}

func ValidateAndSanitizeEmail(email string) (string, error) {
	sanitized := SanitizeEmail(email)
	if !IsValidEmail(sanitized) {
		return "", appErrors.ErrInvalidEmail
	}
	return sanitized, nil
}

func keepRunes(input string, keep func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
