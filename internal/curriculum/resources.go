package curriculum

import (
	"fmt"
	"strings"

	"github.com/jonathan/curriculum-curator/internal/analysis"
	"github.com/jonathan/curriculum-curator/internal/types"
)

const (
	previewChars    = 300
	minPreviewChars = 100
)

var depthDescriptions = map[types.Depth]string{
	types.DepthBeginner: "foundational",
	types.DepthAdvanced: "advanced",
}

var typeDescriptions = map[types.IntentType]string{
	types.IntentDerivation:     "mathematical derivations and proofs",
	types.IntentExample:        "practical examples and case studies",
	types.IntentImplementation: "implementation details and code",
	types.IntentTheory:         "theoretical concepts and principles",
}

// BuildTheory returns the reading material for a section.
func BuildTheory(section *types.ExtractedSection) types.TheoryExplanation {
	preview := []rune(section.Content)
	if len(preview) > previewChars {
		preview = preview[:previewChars]
	}
	content := strings.TrimSpace(string(preview))

	if len([]rune(content)) > minPreviewChars {
		content += "..."
	} else {
		concepts := "core principles"
		if len(section.KeyConcepts) > 0 {
			concepts = strings.Join(section.KeyConcepts[:min(2, len(section.KeyConcepts))], " and ")
		}
		content = fmt.Sprintf("%s is a fundamental concept that encompasses several key ideas. "+
			"Understanding this topic requires familiarity with %s. "+
			"This section explores the theoretical foundations and practical applications.", section.Title, concepts)
	}

	keyConcepts := section.KeyConcepts
	if len(keyConcepts) == 0 {
		keyConcepts = section.Keywords[:min(4, len(section.Keywords))]
	}

	related := make([]string, 0, 5)
	for _, kw := range section.Keywords[:min(5, len(section.Keywords))] {
		related = append(related, analysis.Capitalize(kw))
	}

	return types.TheoryExplanation{
		Title:         "Understanding " + section.Title,
		Content:       content,
		KeyConcepts:   append([]string{}, keyConcepts...),
		RelatedTopics: related,
	}
}

// BuildSummary describes what a section covers and which learning aids it calls for.
func BuildSummary(section *types.ExtractedSection) string {
	depth, ok := depthDescriptions[section.Intent.Depth]
	if !ok {
		depth = "intermediate"
	}
	kind, ok := typeDescriptions[section.Intent.Type]
	if !ok {
		kind = "core concepts"
	}

	clauses := []string{fmt.Sprintf("This section covers %s %s related to %s.", depth, kind, section.Title)}
	if len(section.KeyConcepts) > 0 {
		clauses = append(clauses, fmt.Sprintf("Key concepts include: %s.", strings.Join(section.KeyConcepts, ", ")))
	}
	if section.Intent.NeedsVisual {
		clauses = append(clauses, "Visual learning resources are recommended.")
	}
	if section.Intent.NeedsPractice {
		clauses = append(clauses, "Hands-on practice is suggested.")
	}
	return strings.Join(clauses, " ")
}
