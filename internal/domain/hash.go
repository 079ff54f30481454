package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const brazilCountryCode = "55"

// NormalizeText trims surrounding whitespace and lowercases s, the form Meta
// expects before hashing. Trimming and case mapping follow the browser
// (String.prototype.trim and toLowerCase) so hashes agree with the pixel's.
func NormalizeText(s string) string {
	// cases.Caser keeps state and must not be shared between goroutines
	return cases.Lower(language.Und).String(strings.TrimFunc(s, isTrimmable))
}

// isTrimmable reports the runes browsers strip in trim: Unicode white space
// and U+FEFF, but not U+0085.
func isTrimmable(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// HashSHA256 returns the lowercase hex SHA-256 of the normalized value.
func HashSHA256(s string) string {
	sum := sha256.Sum256([]byte(NormalizeText(s)))
	return hex.EncodeToString(sum[:])
}

func HashEmail(email string) string {
	return HashSHA256(email)
}

// NormalizePhone keeps only ASCII digits and makes sure the number starts with
// the Brazilian country code.
func NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r < '0' || r > '9' {
			return -1
		}
		return r
	}, phone)

	if !strings.HasPrefix(digits, brazilCountryCode) {
		digits = brazilCountryCode + digits
	}
	return digits
}

func HashPhone(phone string) string {
	return HashSHA256(NormalizePhone(phone))
}
