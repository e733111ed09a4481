package textbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"libdb.so/inlinespell/internal/region"
)

func TestReplace(t *testing.T) {
	b := New("I has a eror")

	var edits []region.Edit
	b.ConnectEdit(func(e region.Edit) { edits = append(edits, e) })

	b.Insert(10, "r")
	assert.Equal(t, "I has a error", b.String())

	b.Replace(2, 5, "have")
	assert.Equal(t, "I have a error", b.String())

	b.Delete(0, 2)
	assert.Equal(t, "have a error", b.String())

	b.Replace(3, 3, "")

	assert.Equal(t, []region.Edit{
		{At: 10, Removed: 0, Inserted: 1},
		{At: 2, Removed: 3, Inserted: 4},
		{At: 0, Removed: 2, Inserted: 0},
	}, edits)
}

func TestTextIsInCharacters(t *testing.T) {
	b := New("naïve café")
	assert.Equal(t, 10, b.Len())
	assert.Equal(t, "café", b.Text(6, 10))
}

func TestHighlightsFollowText(t *testing.T) {
	b := New("I has a eror")
	b.Highlight(8, 12)

	b.Insert(0, "Oh, ")
	assert.Equal(t, []region.Span{{Start: 12, End: 16}}, b.Highlights())
	assert.Equal(t, []string{"eror"}, b.HighlightedWords())

	// Inserted text is never highlighted, even inside a highlight.
	b.Insert(14, "r")
	assert.Equal(t, []region.Span{{Start: 12, End: 14}, {Start: 15, End: 17}}, b.Highlights())

	b.Delete(12, 17)
	assert.Empty(t, b.Highlights())
}

func TestHighlightAt(t *testing.T) {
	b := New("I has a eror")
	b.Highlight(2, 5)

	span, ok := b.HighlightAt(3)
	assert.True(t, ok)
	assert.Equal(t, region.Span{Start: 2, End: 5}, span)

	_, ok = b.HighlightAt(5)
	assert.False(t, ok)

	b.Unhighlight(0, 12)
	_, ok = b.HighlightAt(3)
	assert.False(t, ok)
}

func TestNoSpellCheck(t *testing.T) {
	b := New("see http://exmaple.org now")
	b.ExcludeSpellCheck(4, 22)

	assert.Equal(t, []region.Span{{Start: 4, End: 10}}, b.NoSpellCheck(0, 10))
	assert.Empty(t, b.NoSpellCheck(22, 26))
}

func TestOutOfRangePanics(t *testing.T) {
	b := New("abc")
	assert.Panics(t, func() { b.Insert(4, "x") })
	assert.Panics(t, func() { b.Delete(2, 1) })
	assert.Panics(t, func() { b.Highlight(-1, 2) })
}

func TestPosition(t *testing.T) {
	b := New("one\ntwo thre\nfour")

	line, col := b.Position(0)
	assert.Equal(t, []int{1, 1}, []int{line, col})

	line, col = b.Position(8)
	assert.Equal(t, []int{2, 5}, []int{line, col})

	line, col = b.Position(13)
	assert.Equal(t, []int{3, 1}, []int{line, col})
}
