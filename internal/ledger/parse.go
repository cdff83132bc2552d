package ledger

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseScore reads the leading integer of raw. Leading whitespace and a sign
// are accepted, a 0x prefix selects hexadecimal, and anything after the digits
// is ignored, so "12abc" is 12 and "3.7" is 3. It reports false when raw has
// no leading digits or the value does not fit in an int.
func ParseScore(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, isLeadingSpace)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && digitValue(s[end]) < base {
		end++
	}
	if end == 0 {
		return 0, false
	}

	value, err := strconv.ParseInt(sign+s[:end], base, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return int(value), true
}

// isLeadingSpace also skips U+FEFF, which pasted text often starts with.
func isLeadingSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 16
	}
}
