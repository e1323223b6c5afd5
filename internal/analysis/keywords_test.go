package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords_FrequencyOrder(t *testing.T) {
	content := "Graph graph GRAPH vertex vertex edge. This that with from."
	assert.Equal(t, []string{"graph", "vertex", "edge"}, ExtractKeywords(content))
}

func TestExtractKeywords_TiesKeepFirstSeenOrder(t *testing.T) {
	content := "zebra apple mango apple zebra mango"
	assert.Equal(t, []string{"zebra", "apple", "mango"}, ExtractKeywords(content))
}

func TestExtractKeywords_SkipsShortWordsAndStopWords(t *testing.T) {
	content := "the cat sat on a mat because they would make something"
	assert.Equal(t, []string{"something"}, ExtractKeywords(content))
}

func TestExtractKeywords_CapsAtTen(t *testing.T) {
	content := "alpha bravo charlie delta echoo foxtrot golf hotel india juliet kilo lima mike"
	kw := ExtractKeywords(content)
	assert.Len(t, kw, MaxKeywords)
	assert.Equal(t, "alpha", kw[0])
}

func TestExtractKeywords_Empty(t *testing.T) {
	assert.Empty(t, ExtractKeywords(""))
	assert.Empty(t, ExtractKeywords("a an of to"))
}

func TestExtractKeyConcepts_DefinitionalCue(t *testing.T) {
	content := "A heap is defined as a complete binary tree. Sorting refers to ordering elements."
	concepts := ExtractKeyConcepts(content)
	assert.Contains(t, concepts, "a complete binary tree")
	assert.Contains(t, concepts, "ordering elements")
}

func TestExtractKeyConcepts_CapitalizedRuns(t *testing.T) {
	content := "we contrast Merge Sort with Quick Sort on large inputs"
	assert.Equal(t, []string{"Merge Sort", "Quick Sort"}, ExtractKeyConcepts(content))
}

func TestExtractKeyConcepts_DedupesAndCaps(t *testing.T) {
	content := "Red Black trees. Red Black again. Alpha Beta. Gamma Delta. Epsilon Zeta. Eta Theta. Iota Kappa."
	concepts := ExtractKeyConcepts(content)
	assert.Len(t, concepts, MaxKeyConcepts)
	assert.Equal(t, "Red Black", concepts[0])
	assert.Equal(t, "Alpha Beta", concepts[1])
}

func TestExtractKeyConcepts_None(t *testing.T) {
	assert.Empty(t, ExtractKeyConcepts("nothing interesting here at all"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Python", Capitalize("python"))
	assert.Equal(t, "Élan", Capitalize("élan"))
	assert.Equal(t, "", Capitalize(""))
}
