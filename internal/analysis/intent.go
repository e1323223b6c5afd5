package analysis

import (
	"regexp"
	"strings"

	"github.com/jonathan/curriculum-curator/internal/types"
)

// Rule maps a trigger pattern to a classification result.
type Rule[T any] struct {
	Pattern *regexp.Regexp
	Result  T
}

// Classifier evaluates rules in order; the first match wins, otherwise Default.
type Classifier[T any] struct {
	Rules   []Rule[T]
	Default T
}

// Classify returns the result of the first rule whose pattern matches text.
func (c Classifier[T]) Classify(text string) T {
	for _, r := range c.Rules {
		if r.Pattern.MatchString(text) {
			return r.Result
		}
	}
	return c.Default
}

// TypeRules is ordered derivation > example > implementation > theory.
var TypeRules = Classifier[types.IntentType]{
	Rules: []Rule[types.IntentType]{
		{regexp.MustCompile(`formula|equation|derive|proof|theorem|calculate|=\s*\d`), types.IntentDerivation},
		{regexp.MustCompile(`example|instance|case study|scenario|consider|for instance`), types.IntentExample},
		{regexp.MustCompile("implement|code|program|function|class|method|```|def |const |let |var "), types.IntentImplementation},
		{regexp.MustCompile(`theory|principle|law|rule|concept|definition|overview|introduction`), types.IntentTheory},
	},
	Default: types.IntentConcept,
}

// DepthRules checks beginner triggers before advanced ones.
var DepthRules = Classifier[types.Depth]{
	Rules: []Rule[types.Depth]{
		{regexp.MustCompile(`basic|beginner|introduction|fundamental|simple|getting started|what is`), types.DepthBeginner},
		{regexp.MustCompile(`advanced|complex|sophisticated|expert|in-depth|optimization|performance`), types.DepthAdvanced},
	},
	Default: types.DepthIntermediate,
}

// VisualRules flags sections that benefit from visual material.
var VisualRules = Classifier[bool]{
	Rules: []Rule[bool]{
		{regexp.MustCompile(`diagram|figure|chart|graph|illustration|image|visual|screenshot`), true},
	},
}

// PracticeRules flags sections that call for hands-on work.
var PracticeRules = Classifier[bool]{
	Rules: []Rule[bool]{
		{regexp.MustCompile(`exercise|practice|try|implement|build|create|write|hands-on|assignment`), true},
	},
}

// IntentClassifier bundles the four classifiers so they can be swapped as a unit.
type IntentClassifier struct {
	Type     Classifier[types.IntentType]
	Depth    Classifier[types.Depth]
	Visual   Classifier[bool]
	Practice Classifier[bool]
}

// DefaultIntentClassifier uses the keyword trigger tables.
var DefaultIntentClassifier = IntentClassifier{
	Type:     TypeRules,
	Depth:    DepthRules,
	Visual:   VisualRules,
	Practice: PracticeRules,
}

// Classify matches the lowercased content against every table.
func (c IntentClassifier) Classify(content string) types.SectionIntent {
	lower := strings.ToLower(content)
	return types.SectionIntent{
		Type:          c.Type.Classify(lower),
		Depth:         c.Depth.Classify(lower),
		NeedsVisual:   c.Visual.Classify(lower),
		NeedsPractice: c.Practice.Classify(lower),
	}
}

// ClassifyIntent classifies content with the default trigger tables.
func ClassifyIntent(content string) types.SectionIntent {
	return DefaultIntentClassifier.Classify(content)
}
