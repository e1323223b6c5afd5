// Package observability provides structured logging and formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/curriculum-curator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintSections outputs the overall topic and a one-line summary per section.
func (p *Printer) PrintSections(topic string, sections []types.ExtractedSection) {
	if len(sections) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Topic:    %s\n", topic))
	sb.WriteString(fmt.Sprintf("Sections: %d\n\n", len(sections)))

	for i, s := range sections {
		sb.WriteString(fmt.Sprintf("%d. %s\n", s.Order+1, s.Title))
		sb.WriteString(fmt.Sprintf("   %s / %s", s.Intent.Type, s.Intent.Depth))
		if s.Intent.NeedsVisual {
			sb.WriteString(" · visual")
		}
		if s.Intent.NeedsPractice {
			sb.WriteString(" · practice")
		}
		sb.WriteString("\n")
		if len(s.Keywords) > 0 {
			count := min(len(s.Keywords), maxItemsToShow)
			sb.WriteString(fmt.Sprintf("   Keywords: %s\n", strings.Join(s.Keywords[:count], ", ")))
		}
		if i < len(sections)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EXTRACTED SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResources outputs ranked resources with their scores.
func (p *Printer) PrintResources(title string, resources []types.LearningResource) {
	if len(resources) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total resources: %d\n\n", len(resources)))

	count := min(len(resources), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := resources[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.Title))
		sb.WriteString(fmt.Sprintf("    %s · score %d", r.Source, r.RankingScore))
		if r.MatchConfidence != nil {
			sb.WriteString(fmt.Sprintf(" (match %d%%)", *r.MatchConfidence))
		}
		sb.WriteString("\n")
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(resources) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more resources", len(resources)-maxItemsToShow))
	}

	p.printBox(strings.ToUpper(title), sb.String())
}

// PrintSectionResources outputs the summary and best video for each resolved section.
func (p *Printer) PrintSectionResources(sections []types.ExtractedSection, resolved []types.SectionResources) {
	if len(resolved) == 0 {
		return
	}

	titles := make(map[string]string, len(sections))
	for _, s := range sections {
		titles[s.ID] = s.Title
	}

	for _, sr := range resolved {
		var sb strings.Builder
		sb.WriteString(sr.Summary)
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("Videos: %d · Articles: %d\n", len(sr.Videos), len(sr.Articles)))
		if len(sr.Videos) > 0 {
			best := sr.Videos[0]
			sb.WriteString(fmt.Sprintf("Best: %s (%d)", best.Title, best.RankingScore))
		}

		title := titles[sr.SectionID]
		if title == "" {
			title = sr.SectionID
		}
		p.printBox(title, wrap(strings.TrimSuffix(sb.String(), "\n"), boxWidth-4))
	}
}

// wrap breaks text on word boundaries so box lines are not truncated.
func wrap(text string, width int) string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
