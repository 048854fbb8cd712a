package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

// Pre-compiled patterns for stripping markup and collapsing whitespace.
var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`[ \t]+`)
	blankLinePattern  = regexp.MustCompile(`\n{3,}`)
)

// Field cleans a single-line text input from an untrusted request payload:
// markup tags are stripped, control characters removed, and runs of
// whitespace (including newlines) collapsed to single spaces. The result is
// safe to embed in prompt text. Empty input stays empty.
func Field(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = stripControl(s, false)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// Multiline cleans a long-form text input the same way as Field but
// preserves paragraph structure: newlines survive, horizontal whitespace
// runs collapse, and three or more consecutive blank lines reduce to one.
func Multiline(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = stripControl(s, true)
	s = whitespacePattern.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = blankLinePattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// stripControl removes control characters. When keepNewlines is set,
// newline runes pass through so Multiline can preserve paragraphs.
func stripControl(s string, keepNewlines bool) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			if keepNewlines {
				return r
			}
			return ' '
		}
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
