package phone

import "strings"

// keyLength is how many trailing characters of a cleaned number form the
// grouping key. Ten digits covers national formats while ignoring country
// prefixes, so "+1 (555) 123-4567" and "555-123-4567" land on the same key.
const keyLength = 10

// Normalize reduces a raw phone number to its grouping key: whitespace,
// parentheses, and dashes are stripped, then the last ten characters are
// kept. Short numbers are returned whole. The empty string normalizes to
// the empty string.
func Normalize(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '(', ')', '-':
			return -1
		}
		return r
	}, raw)
	if len(cleaned) <= keyLength {
		return cleaned
	}
	return cleaned[len(cleaned)-keyLength:]
}

// SameLine reports whether two raw numbers refer to the same line: their
// normalized keys are equal, or one key is a suffix of the other. Suffix
// matching in both directions lets a seven-digit local number match its
// ten-digit form no matter which side carried the area code. Empty numbers
// never match anything.
func SameLine(a, b string) bool {
	ka := Normalize(a)
	kb := Normalize(b)
	if ka == "" || kb == "" {
		return false
	}
	return ka == kb || strings.HasSuffix(ka, kb) || strings.HasSuffix(kb, ka)
}
