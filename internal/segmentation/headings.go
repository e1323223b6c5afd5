// Package segmentation splits normalized document text into ordered learning sections.
package segmentation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	markdownHeadingRe = regexp.MustCompile(`^#{1,6}\s+.+$`)
	numberedHeadingRe = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	labelHeadingRe    = regexp.MustCompile(`(?i)^(?:Chapter|Section|Part|Unit|Module|Lesson)\s+\d*`)
	allCapsHeadingRe  = regexp.MustCompile(`^[A-Z][A-Z\s]{4,}$`)
	doubleSpaceRe     = regexp.MustCompile(`\s{2,}`)
	titleCaseLineRe   = regexp.MustCompile(`^[A-Z][a-zA-Z\s]+$`)

	titleMarkdownRe = regexp.MustCompile(`^#+\s*`)
	titleNumberRe   = regexp.MustCompile(`^\d+\.\s*`)
	titleLabelRe    = regexp.MustCompile(`(?i)^(?:Chapter|Section|Part|Unit|Module|Lesson)\s*\d*:?\s*`)
)

// IsHeading reports whether a trimmed line looks like a section heading.
func IsHeading(line string) bool {
	n := utf8.RuneCountInString(line)
	if n < 3 || n > 100 {
		return false
	}

	switch {
	case markdownHeadingRe.MatchString(line):
		return true
	case numberedHeadingRe.MatchString(line) && n < 80:
		return true
	case labelHeadingRe.MatchString(line):
		return true
	case allCapsHeadingRe.MatchString(line) && !doubleSpaceRe.MatchString(line):
		return true
	}

	if titleCaseLineRe.MatchString(line) && n >= 5 && n <= 60 &&
		!strings.HasSuffix(line, ".") && !strings.HasSuffix(line, ",") && !strings.HasSuffix(line, ";") {
		return len(strings.Fields(line)) <= 8
	}
	return false
}

// CleanTitle strips markdown markers, ordinal numbering and chapter-style labels.
func CleanTitle(title string) string {
	title = titleMarkdownRe.ReplaceAllString(title, "")
	title = titleNumberRe.ReplaceAllString(title, "")
	title = titleLabelRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
