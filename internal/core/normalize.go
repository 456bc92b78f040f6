package core

// normalize.go canonicalizes raw identity values for comparison.
//
// Emails and usernames fold case; phones strip formatting so "050-123-4567"
// and "0501234567" compare equal. Stripped phone forms are compared
// literally: "+972501234567" and "0501234567" stay distinct because the
// sheet is inconsistent about which form it stores and guessing an
// equivalence here would manufacture matches.

import (
	"strings"
	"unicode"
)

// Normalize converts a raw identity value to its canonical comparison form.
// Empty or whitespace-only input normalizes to "", which never matches
// anything (the matcher requires both sides non-empty).
func Normalize(field IdentityField, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	switch field {
	case FieldPhone:
		return stripPhoneFormatting(raw)
	default:
		// email and username fold case
		return strings.ToLower(raw)
	}
}

// stripPhoneFormatting drops whitespace and hyphens, keeping everything else
// (digits, a leading "+") untouched.
func stripPhoneFormatting(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
