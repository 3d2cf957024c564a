package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	lineBreaks = regexp.MustCompile(`[\n\r]+`)
	spaces     = regexp.MustCompile(`[\x{2028}\x{2029}\x0B ]+`)
)

// StripUnprintable removes control characters except tab, CR and LF.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, s)
}

// NormalizeWhitespace collapses runs of line breaks into a single "\n", or
// into a space when singleLine is set, collapses runs of spaces and trims
// spaces at both ends. Tabs are kept.
func NormalizeWhitespace(s string, singleLine bool) string {
	if singleLine {
		s = lineBreaks.ReplaceAllString(s, " ")
	} else {
		s = lineBreaks.ReplaceAllString(s, "\n")
	}
	s = spaces.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}
