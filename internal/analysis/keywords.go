// Package analysis derives keywords, key concepts, intent and an overall topic from section text.
// Every function is pure and safe for concurrent use.
package analysis

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// MaxKeywords is the number of keywords kept per section.
	MaxKeywords = 10
	// MaxKeyConcepts is the number of key concepts kept per section.
	MaxKeyConcepts = 5
)

var wordRe = regexp.MustCompile(`\b[a-z]{4,}\b`)

var stopWords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {}, "been": {}, "were": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "about": {}, "which": {}, "their": {}, "there": {}, "these": {}, "those": {},
	"then": {}, "than": {}, "when": {}, "what": {}, "where": {}, "while": {}, "also": {}, "into": {}, "only": {},
	"other": {}, "more": {}, "most": {}, "some": {}, "such": {}, "each": {}, "very": {}, "just": {}, "over": {},
	"after": {}, "before": {}, "between": {}, "through": {}, "during": {}, "under": {}, "being": {},
	"they": {}, "them": {}, "your": {}, "because": {}, "make": {}, "like": {}, "using": {}, "used": {},
	"does": {}, "done": {}, "doing": {}, "made": {}, "many": {}, "much": {}, "even": {}, "well": {},
}

// IsStopWord reports whether w is filtered out of keyword extraction.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// ExtractKeywords returns up to MaxKeywords lowercase words of four or more letters,
// most frequent first. Ties keep first-seen order.
func ExtractKeywords(content string) []string {
	words := wordRe.FindAllString(strings.ToLower(content), -1)

	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if IsStopWord(w) {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > MaxKeywords {
		order = order[:MaxKeywords]
	}
	return order
}

var conceptPatterns = []*regexp.Regexp{
	// phrase following a definitional cue
	regexp.MustCompile(`(?i)(?:is defined as|refers to|means|is called|is a|are)\s+["']?([^.,"'\n]{5,40})`),
	// run of two or more Capitalized words
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
}

// ExtractKeyConcepts returns up to MaxKeyConcepts distinct short phrases that look like
// defined terms or proper nouns, in first-seen order.
func ExtractKeyConcepts(content string) []string {
	seen := make(map[string]struct{})
	var concepts []string
	for _, re := range conceptPatterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			concept := strings.TrimSpace(m[1])
			if n := utf8.RuneCountInString(concept); n <= 3 || n >= 50 {
				continue
			}
			if _, dup := seen[concept]; dup {
				continue
			}
			seen[concept] = struct{}{}
			concepts = append(concepts, concept)
		}
	}
	if len(concepts) > MaxKeyConcepts {
		concepts = concepts[:MaxKeyConcepts]
	}
	return concepts
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
