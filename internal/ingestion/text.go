package ingestion

import (
	"regexp"
	"strings"
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe        = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes extracted text: LF line endings, single spaces, at most one
// blank line between blocks, and no leading or trailing whitespace on any line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = horizontalSpaceRe.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	content = strings.Join(lines, "\n")

	content = blankRunRe.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
