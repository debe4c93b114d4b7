package site

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Thousands formats n with comma group separators.
func Thousands(n int) string {
	return printer.Sprintf("%d", n)
}

// ParseLeadingInt reads an optionally signed run of digits after leading
// whitespace and ignores whatever follows, so "12abc" is 12 and "1,000"
// is 1.
func ParseLeadingInt(s string) (int, error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, ErrNotANumber
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, ErrNotANumber
	}
	return n, nil
}

// parseLeadingFloat reads the longest prefix of s that is a decimal
// number.
func parseLeadingFloat(s string) (float64, error) {
	end, dot := 0, false
	for end < len(s) {
		c := s[end]
		if c == '.' && !dot {
			dot = true
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}
	for end > 0 {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v, nil
		}
		end--
	}
	return 0, ErrNotANumber
}
