package analysis

import (
	"sort"
	"strings"

	"github.com/jonathan/curriculum-curator/internal/types"
)

// DefaultTopic is used when there is nothing to derive a topic from.
const DefaultTopic = "Learning Content"

// IdentifyTopic pools keywords and key concepts across sections and joins the three most
// frequent terms with " & ". It falls back to the first section title, then DefaultTopic.
func IdentifyTopic(sections []types.ExtractedSection) string {
	counts := make(map[string]int)
	var order []string
	add := func(term string) {
		normalized := strings.TrimSpace(strings.ToLower(term))
		if len([]rune(normalized)) <= 2 {
			return
		}
		if counts[normalized] == 0 {
			order = append(order, normalized)
		}
		counts[normalized]++
	}

	// all keywords first, then all concepts
	for _, s := range sections {
		for _, k := range s.Keywords {
			add(k)
		}
	}
	for _, s := range sections {
		for _, c := range s.KeyConcepts {
			add(c)
		}
	}

	if len(order) > 0 {
		sort.SliceStable(order, func(i, j int) bool {
			return counts[order[i]] > counts[order[j]]
		})
		if len(order) > 3 {
			order = order[:3]
		}
		top := make([]string, len(order))
		for i, w := range order {
			top[i] = Capitalize(w)
		}
		return strings.Join(top, " & ")
	}

	if len(sections) > 0 && sections[0].Title != "" {
		return sections[0].Title
	}
	return DefaultTopic
}
