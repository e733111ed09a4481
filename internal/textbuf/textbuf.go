// Package textbuf provides an in-memory text buffer with highlight tagging.
// It behaves like a GtkTextBuffer with a single "misspelled" tag and is used
// wherever no GTK widget is around, such as the command line checker and
// tests.
package textbuf

import (
	"fmt"
	"strings"

	"libdb.so/inlinespell/internal/region"
	"libdb.so/inlinespell/internal/signaling"
)

// Buffer is a mutable text with highlighted and excluded spans. Offsets are
// character offsets. Like GTK tags, highlights and exclusions move with the
// text they cover and newly inserted text carries neither.
type Buffer struct {
	text       []rune
	highlights region.Set
	noCheck    region.Set
	edits      signaling.Signaler[region.Edit]
}

// New creates a buffer holding text.
func New(text string) *Buffer {
	return &Buffer{text: []rune(text)}
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Text returns the characters in [start, end).
func (b *Buffer) Text(start, end int) string {
	b.assertRange(start, end)
	return string(b.text[start:end])
}

// String returns the whole text.
func (b *Buffer) String() string {
	return string(b.text)
}

func (b *Buffer) assertRange(start, end int) {
	if start < 0 || end < start || end > len(b.text) {
		panic(fmt.Sprintf("BUG: range [%d, %d) outside buffer of length %d", start, end, len(b.text)))
	}
}

// ConnectEdit calls f after every change of the text.
func (b *Buffer) ConnectEdit(f func(region.Edit)) func() {
	return b.edits.Connect(f)
}

// Insert inserts text at offset at.
func (b *Buffer) Insert(at int, text string) {
	b.Replace(at, at, text)
}

// Delete removes the characters in [start, end).
func (b *Buffer) Delete(start, end int) {
	b.Replace(start, end, "")
}

// SetText replaces the whole text.
func (b *Buffer) SetText(text string) {
	b.Replace(0, len(b.text), text)
}

// Replace replaces the characters in [start, end) with text.
func (b *Buffer) Replace(start, end int, text string) {
	b.assertRange(start, end)

	inserted := []rune(text)
	edit := region.Edit{At: start, Removed: end - start, Inserted: len(inserted)}
	if edit.Removed == 0 && edit.Inserted == 0 {
		return
	}

	b.text = append(b.text[:start:start], append(inserted, b.text[end:]...)...)

	for _, set := range []*region.Set{&b.highlights, &b.noCheck} {
		edit.Apply(set)
		span := edit.InsertedSpan()
		set.Subtract(span.Start, span.End)
	}

	b.edits.Signal(edit)
}

// Highlight marks [start, end) as misspelled.
func (b *Buffer) Highlight(start, end int) {
	b.assertRange(start, end)
	b.highlights.Add(start, end)
}

// Unhighlight removes the misspelled mark from [start, end).
func (b *Buffer) Unhighlight(start, end int) {
	b.assertRange(start, end)
	b.highlights.Subtract(start, end)
}

// HighlightAt returns the highlighted span containing offset.
func (b *Buffer) HighlightAt(offset int) (region.Span, bool) {
	return b.highlights.Contains(offset)
}

// Highlights returns the highlighted spans in order.
func (b *Buffer) Highlights() []region.Span {
	return b.highlights.Spans()
}

// HighlightedWords returns the text of every highlighted span.
func (b *Buffer) HighlightedWords() []string {
	var words []string
	for span := range b.highlights.All() {
		words = append(words, string(b.text[span.Start:span.End]))
	}
	return words
}

// ExcludeSpellCheck marks [start, end) as text that must not be checked,
// such as code or URLs.
func (b *Buffer) ExcludeSpellCheck(start, end int) {
	b.assertRange(start, end)
	b.noCheck.Add(start, end)
}

// NoSpellCheck returns the excluded spans overlapping [start, end).
func (b *Buffer) NoSpellCheck(start, end int) []region.Span {
	return b.noCheck.Intersect(start, end).Spans()
}

// Position returns the 1-based line and column of offset.
func (b *Buffer) Position(offset int) (line, col int) {
	b.assertRange(offset, offset)

	line = 1 + strings.Count(string(b.text[:offset]), "\n")
	col = offset + 1
	for i := offset - 1; i >= 0; i-- {
		if b.text[i] == '\n' {
			col = offset - i
			break
		}
	}
	return line, col
}
