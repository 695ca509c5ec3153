package export

import (
	"fmt"
	"regexp"
)

var (
	whitespaceRun         = regexp.MustCompile(`\s+`)
	unsafeFilenameCharset = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// SanitizeFilename turns a full name into a file name stem: whitespace runs become "_",
// characters not allowed in file names are dropped, and an empty result becomes "Resume".
func SanitizeFilename(name string) string {
	s := whitespaceRun.ReplaceAllString(name, "_")
	s = unsafeFilenameCharset.ReplaceAllString(s, "")
	if s == "" {
		return "Resume"
	}
	return s
}

// PDFFilename returns the export file name for a full name.
func PDFFilename(fullName string) string {
	return SanitizeFilename(fullName) + "_Resume.pdf"
}

// PageFilename returns the file name of the n-th (0-based) PNG page.
func PageFilename(fullName string, n int) string {
	return fmt.Sprintf("%s_Resume_page-%02d.png", SanitizeFilename(fullName), n+1)
}
