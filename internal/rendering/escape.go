// Package rendering turns a resume record into HTML using the embedded template set.
package rendering

import "strings"

// normalizeText converts CR and CRLF line endings to LF and drops control characters
// other than newline and tab. HTML escaping itself is left to html/template.
func normalizeText(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	prevCR := false
	for _, r := range text {
		switch {
		case r == '\r':
			result.WriteByte('\n')
			prevCR = true
			continue
		case r == '\n':
			if !prevCR {
				result.WriteByte('\n')
			}
		case r == '\t':
			result.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			// dropped
		default:
			result.WriteRune(r)
		}
		prevCR = false
	}

	return result.String()
}
