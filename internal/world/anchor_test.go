package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleOutline() []OutlineEntry {
	return []OutlineEntry{
		{Kind: KindFunction, QualifiedName: "freeFunction"},
		{Kind: KindMethod, QualifiedName: "Shape::draw"},
		{Kind: KindMethod, QualifiedName: "Shape::drawAll"},
		{Kind: KindClass, QualifiedName: "Shape"},
	}
}

func TestResolveAnchor_Exact(t *testing.T) {
	m, ok := ResolveAnchor(sampleOutline(), "function", "freeFunction")
	assert.True(t, ok)
	assert.Equal(t, TierExact, m.Tier)
	assert.Equal(t, "freeFunction", m.Entry.QualifiedName)
}

func TestResolveAnchor_QualifiedSuffix(t *testing.T) {
	m, ok := ResolveAnchor(sampleOutline(), "method", "draw")
	assert.True(t, ok)
	assert.Equal(t, TierQualifiedSuffix, m.Tier)
	assert.Equal(t, "Shape::draw", m.Entry.QualifiedName)
}

func TestResolveAnchor_Fuzzy(t *testing.T) {
	m, ok := ResolveAnchor(sampleOutline(), "function", "freeFunctoin")
	assert.True(t, ok)
	assert.Equal(t, TierFuzzy, m.Tier)
	assert.Equal(t, "freeFunction", m.Entry.QualifiedName)
	assert.LessOrEqual(t, m.Distance, uint32(3))
}

func TestResolveAnchor_NoMatch(t *testing.T) {
	_, ok := ResolveAnchor(sampleOutline(), "function", "completelyUnrelatedName")
	assert.False(t, ok)
}

func TestResolveAnchor_FuzzyPicksClosest(t *testing.T) {
	m, ok := ResolveAnchor(sampleOutline(), "method", "drw")
	assert.True(t, ok)
	assert.Equal(t, TierFuzzy, m.Tier)
	assert.Equal(t, "Shape::draw", m.Entry.QualifiedName)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, uint32(0), levenshtein("", ""))
	assert.Equal(t, uint32(0), levenshtein("abc", "abc"))
	assert.Equal(t, uint32(1), levenshtein("abc", "abd"))
	assert.Equal(t, uint32(3), levenshtein("kitten", "sitting"))
	assert.Equal(t, uint32(3), levenshtein("", "abc"))
	assert.Equal(t, uint32(3), levenshtein("abc", ""))
}

func TestLevenshtein_CodePointsNotBytes(t *testing.T) {
	// "café" vs "cafe": one code point differs (é vs e), even though é is
	// two bytes in UTF-8 — a byte-based distance would overcount.
	assert.Equal(t, uint32(1), levenshtein("café", "cafe"))
}
