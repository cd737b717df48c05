package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightMatches_EmptyQuery(t *testing.T) {
	assert.Equal(t, "some text", HighlightMatches("some text", ""))
	assert.Equal(t, "some text", HighlightMatches("some text", "   "))
}

func TestHighlightMatches_EmptyText(t *testing.T) {
	assert.Equal(t, "", HighlightMatches("", "query"))
}

func TestHighlightMatches_SingleTerm(t *testing.T) {
	got := HighlightMatches("Call the plumber today", "plumber")
	assert.Equal(t, "Call the <mark>plumber</mark> today", got)
}

func TestHighlightMatches_CaseInsensitive(t *testing.T) {
	got := HighlightMatches("Plumber and PLUMBER", "plumber")
	assert.Equal(t, "<mark>Plumber</mark> and <mark>PLUMBER</mark>", got)
}

func TestHighlightMatches_MultipleTerms(t *testing.T) {
	got := HighlightMatches("kitchen sink repair", "sink kitchen")
	assert.Equal(t, "<mark>kitchen</mark> <mark>sink</mark> repair", got)
}

func TestHighlightMatches_RegexMetacharactersLiteral(t *testing.T) {
	// Parentheses and other punctuation in the query must match
	// verbatim, never as regex syntax.
	got := HighlightMatches("(测试)", "(测试)")
	assert.Equal(t, "<mark>(测试)</mark>", got)

	got = HighlightMatches("price is $5.00 (approx)", "$5.00")
	assert.Equal(t, "price is <mark>$5.00</mark> (approx)", got)

	got = HighlightMatches("a+b=c", "a+b")
	assert.Equal(t, "<mark>a+b</mark>=c", got)
}

func TestHighlightMatches_NoOccurrence(t *testing.T) {
	assert.Equal(t, "nothing here", HighlightMatches("nothing here", "plumber"))
}

func TestHighlightMatches_NeverNestsMarkers(t *testing.T) {
	// Terms that overlap the same substring must not produce nested
	// or mismatched markers.
	got := HighlightMatches("abcd", "abc bcd")

	assert.Equal(t, strings.Count(got, MarkStart), strings.Count(got, MarkEnd))
	assert.NotContains(t, got, MarkStart+"<")
	assert.Contains(t, got, "abcd") // content preserved inside markers
	assert.Equal(t, "abcd", strings.NewReplacer(MarkStart, "", MarkEnd, "").Replace(got))
}

func TestHighlightMatches_AdjacentMatchesMerged(t *testing.T) {
	got := HighlightMatches("aaaa", "aa")
	assert.Equal(t, "<mark>aaaa</mark>", got)
}

func TestHighlightMatches_RepeatedTerm(t *testing.T) {
	got := HighlightMatches("tea and more tea", "tea")
	assert.Equal(t, "<mark>tea</mark> and more <mark>tea</mark>", got)
}
