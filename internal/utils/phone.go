package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// PhoneLength is the expected length of a Brazilian mobile number with
// area code (DDD + 9 digits).
const PhoneLength = 11

// NormalizePhone strips everything but digits from a phone number.
func NormalizePhone(raw string) string {
	return nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")
}

// ValidPIN reports whether pin is exactly four numeric digits.
func ValidPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
