package segmentation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/curriculum-curator/internal/analysis"
	"github.com/jonathan/curriculum-curator/internal/types"
)

const (
	// MinHeadingSectionChars is the content length a heading section must exceed to be kept.
	MinHeadingSectionChars = 30
	// MinParagraphChars is the length a paragraph or paragraph block must exceed to count.
	MinParagraphChars = 50
	// ParagraphBlockChars is the accumulated length that closes a paragraph block.
	ParagraphBlockChars = 400
	// headingClusterLines merges headings that sit within this many lines of the previous one.
	headingClusterLines = 2
)

var (
	paragraphSplitRe = regexp.MustCompile(`\n\n+`)
	sentenceSplitRe  = regexp.MustCompile(`[.!?]`)
)

type heading struct {
	title     string
	lineIndex int
}

// Segment splits normalized text into ordered sections. Heading-based segmentation is tried
// first; if it finds no headings or keeps no sections, paragraphs are accumulated instead.
func Segment(text string) []types.ExtractedSection {
	if sections := segmentByHeadings(text); len(sections) > 0 {
		return sections
	}
	return segmentByParagraphs(text)
}

func segmentByHeadings(text string) []types.ExtractedSection {
	lines := strings.Split(text, "\n")

	var candidates []heading
	for i, line := range lines {
		if trimmed := strings.TrimSpace(line); IsHeading(trimmed) {
			candidates = append(candidates, heading{title: trimmed, lineIndex: i})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Banner lines stacked on top of each other count as one heading. Distance is measured
	// against the previous candidate, kept or not.
	unique := make([]heading, 0, len(candidates))
	for i, h := range candidates {
		if i == 0 || h.lineIndex-candidates[i-1].lineIndex > headingClusterLines {
			unique = append(unique, h)
		}
	}

	var sections []types.ExtractedSection
	for i, h := range unique {
		end := len(lines)
		if i+1 < len(unique) {
			end = unique[i+1].lineIndex
		}
		content := strings.TrimSpace(strings.Join(lines[h.lineIndex+1:end], "\n"))
		if utf8.RuneCountInString(content) > MinHeadingSectionChars {
			sections = append(sections, NewSection(headingTitle(h.title), content, len(sections)))
		}
	}
	return sections
}

func segmentByParagraphs(text string) []types.ExtractedSection {
	var paragraphs []string
	for _, p := range paragraphSplitRe.Split(text, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(p)) > MinParagraphChars {
			paragraphs = append(paragraphs, p)
		}
	}

	var sections []types.ExtractedSection
	var current strings.Builder
	for i, p := range paragraphs {
		current.WriteString(p)
		current.WriteString("\n\n")

		isLast := i == len(paragraphs)-1
		if utf8.RuneCountInString(current.String()) > ParagraphBlockChars || isLast {
			block := strings.TrimSpace(current.String())
			if utf8.RuneCountInString(block) > MinParagraphChars {
				order := len(sections)
				sections = append(sections, NewSection(synthesizeTitle(current.String(), order), block, order))
			}
			current.Reset()
		}
	}

	if len(sections) == 0 && utf8.RuneCountInString(text) > MinParagraphChars {
		sections = append(sections, NewSection(synthesizeTitle(text, 0), text, 0))
	}
	return sections
}

// headingTitle cleans a heading line, keeping the label when nothing else is left ("CHAPTER 3").
func headingTitle(line string) string {
	if cleaned := CleanTitle(line); cleaned != "" {
		return cleaned
	}
	return strings.TrimSpace(titleMarkdownRe.ReplaceAllString(line, ""))
}

// NewSection analyzes content and builds an extracted section with a fresh ID.
func NewSection(title, content string, order int) types.ExtractedSection {
	return types.ExtractedSection{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     content,
		KeyConcepts: nonNil(analysis.ExtractKeyConcepts(content)),
		Keywords:    nonNil(analysis.ExtractKeywords(content)),
		Intent:      analysis.ClassifyIntent(content),
		Order:       order,
		Origin:      types.OriginExtracted,
	}
}

// synthesizeTitle names a paragraph block: its first line, its first sentence, its top
// keywords, or just its position.
func synthesizeTitle(content string, index int) string {
	firstLine := ""
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) != "" {
			firstLine = strings.TrimSpace(l)
			break
		}
	}
	if n := utf8.RuneCountInString(firstLine); n >= 10 && n <= 60 && !strings.HasSuffix(firstLine, ".") {
		return firstLine
	}

	firstSentence := strings.TrimSpace(sentenceSplitRe.Split(content, 2)[0])
	if n := utf8.RuneCountInString(firstSentence); n >= 10 && n <= 60 {
		return firstSentence
	}

	keywords := analysis.ExtractKeywords(content)
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	if len(keywords) > 0 {
		for i, k := range keywords {
			keywords[i] = analysis.Capitalize(k)
		}
		return fmt.Sprintf("Section %d: %s", index+1, strings.Join(keywords, ", "))
	}
	return fmt.Sprintf("Section %d", index+1)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
