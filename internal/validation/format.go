package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var phoneRegex = regexp.MustCompile(`^\d{10}$`)

// IsDigits reports whether s is non-empty and made of ASCII digits only.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsPhone checks the Colombian landline/cell format used across the app:
// exactly ten digits.
func IsPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsCellPhone additionally requires the cell prefix.
func IsCellPhone(phone string) bool {
	return IsPhone(phone) && phone[0] == '3'
}

// IsPersonalName accepts Unicode letters and interior single spaces, with
// every space-separated component at least two runes long.
func IsPersonalName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	for _, part := range strings.Fields(name) {
		if utf8.RuneCountInString(part) < 2 {
			return false
		}
		for _, r := range part {
			if !unicode.IsLetter(r) {
				return false
			}
		}
	}
	return true
}

// StripLeadingZeros normalizes numeric strings such as salaries; "000" → "0".
func StripLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" && s != "" {
		return "0"
	}
	return trimmed
}
