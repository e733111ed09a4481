package gtkspell

import (
	"fmt"
	"unicode/utf8"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"
	"github.com/diamondburned/gotkit/gtkutil/textutil"
	"libdb.so/inlinespell/internal/inline"
	"libdb.so/inlinespell/internal/region"
	"libdb.so/inlinespell/internal/signaling"
)

// NoSpellCheckTag is the name of the tag GtkSourceView applies to text that
// should not be spell checked, such as code.
const NoSpellCheckTag = "gtksourceview:context-classes:no-spell-check"

const misspelledTagName = "inlinespell-misspelled"

var misspelledTag = textutil.TextTag{
	"underline":     pango.UnderlineError,
	"underline-set": true,
}

// TextBuffer adapts a gtk.TextBuffer for the inline checker.
type TextBuffer struct {
	buffer *gtk.TextBuffer
	tag    *gtk.TextTag

	edits   signaling.Signaler[region.Edit]
	pending *region.Edit
	handles []glib.SignalHandle
}

var (
	_ inline.Buffer       = (*TextBuffer)(nil)
	_ inline.EditNotifier = (*TextBuffer)(nil)
	_ inline.Exclusions   = (*TextBuffer)(nil)
)

// NewTextBuffer wraps buffer. Call Destroy once done with it.
func NewTextBuffer(buffer *gtk.TextBuffer) *TextBuffer {
	b := &TextBuffer{
		buffer: buffer,
		tag:    misspelledTag.FromTable(buffer.TagTable(), misspelledTagName),
	}

	// Edits are reported once the buffer has changed, which GTK signals with
	// "changed" right after the default handlers of both signals below ran.
	b.handles = []glib.SignalHandle{
		buffer.ConnectInsertText(func(location *gtk.TextIter, text string, _ int) {
			b.pending = &region.Edit{
				At:       location.Offset(),
				Inserted: utf8.RuneCountInString(text),
			}
		}),
		buffer.ConnectDeleteRange(func(start, end *gtk.TextIter) {
			b.pending = &region.Edit{
				At:      start.Offset(),
				Removed: end.Offset() - start.Offset(),
			}
		}),
		buffer.ConnectChanged(func() {
			if b.pending == nil {
				return
			}
			edit := *b.pending
			b.pending = nil
			b.edits.Signal(edit)
		}),
	}

	return b
}

// Destroy disconnects from the buffer and removes the highlights.
func (b *TextBuffer) Destroy() {
	for _, h := range b.handles {
		b.buffer.HandlerDisconnect(h)
	}
	b.handles = nil
	b.edits.Disconnect()

	start, end := b.buffer.Bounds()
	b.buffer.RemoveTag(b.tag, start, end)
}

// TextBuffer returns the wrapped buffer.
func (b *TextBuffer) TextBuffer() *gtk.TextBuffer {
	return b.buffer
}

// ConnectEdit implements inline.EditNotifier.
func (b *TextBuffer) ConnectEdit(f func(region.Edit)) func() {
	return b.edits.Connect(f)
}

// Len implements words.Source.
func (b *TextBuffer) Len() int {
	return b.buffer.CharCount()
}

// Text implements words.Source. Embedded objects are kept as U+FFFC so that
// offsets match.
func (b *TextBuffer) Text(start, end int) string {
	return b.buffer.Slice(b.iter(start), b.iter(end), true)
}

func (b *TextBuffer) iter(offset int) *gtk.TextIter {
	if offset < 0 || offset > b.buffer.CharCount() {
		panic(fmt.Sprintf("BUG: offset %d outside buffer of length %d", offset, b.buffer.CharCount()))
	}
	return b.buffer.IterAtOffset(offset)
}

// Highlight implements inline.Buffer.
func (b *TextBuffer) Highlight(start, end int) {
	b.buffer.ApplyTag(b.tag, b.iter(start), b.iter(end))
}

// Unhighlight implements inline.Buffer.
func (b *TextBuffer) Unhighlight(start, end int) {
	b.buffer.RemoveTag(b.tag, b.iter(start), b.iter(end))
}

// HighlightAt implements inline.Buffer.
func (b *TextBuffer) HighlightAt(offset int) (region.Span, bool) {
	if offset < 0 || offset >= b.buffer.CharCount() {
		return region.Span{}, false
	}
	return tagSpanAt(b.buffer.IterAtOffset(offset), b.tag)
}

// Highlights implements inline.Buffer.
func (b *TextBuffer) Highlights() []region.Span {
	start, end := b.buffer.Bounds()
	return tagSpans(start, end, b.tag)
}

// Replace implements inline.Buffer as a single user action.
func (b *TextBuffer) Replace(start, end int, text string) {
	b.buffer.BeginUserAction()
	defer b.buffer.EndUserAction()

	startIter := b.iter(start)
	b.buffer.Delete(startIter, b.iter(end))
	b.buffer.Insert(startIter, text)
}

// NoSpellCheck implements inline.Exclusions.
func (b *TextBuffer) NoSpellCheck(start, end int) []region.Span {
	tag := b.buffer.TagTable().Lookup(NoSpellCheckTag)
	if tag == nil {
		return nil
	}
	return tagSpans(b.iter(start), b.iter(end), tag)
}

func tagSpanAt(iter *gtk.TextIter, tag *gtk.TextTag) (region.Span, bool) {
	if !iter.HasTag(tag) {
		return region.Span{}, false
	}

	start := iter.Copy()
	if !start.StartsTag(tag) {
		start.BackwardToTagToggle(tag)
	}

	end := iter.Copy()
	end.ForwardToTagToggle(tag)

	return region.Span{Start: start.Offset(), End: end.Offset()}, true
}

// tagSpans returns the spans of [start, end) carrying tag.
func tagSpans(start, end *gtk.TextIter, tag *gtk.TextTag) []region.Span {
	limit := end.Offset()
	it := start.Copy()

	var spans []region.Span
	if it.HasTag(tag) && !it.StartsTag(tag) {
		it.BackwardToTagToggle(tag)
	}

	for it.Offset() < limit {
		if !it.StartsTag(tag) && !it.ForwardToTagToggle(tag) {
			break
		}
		if it.Offset() >= limit {
			break
		}

		from := it.Offset()
		it.ForwardToTagToggle(tag)
		spans = append(spans, region.Span{
			Start: max(from, start.Offset()),
			End:   min(it.Offset(), limit),
		})
	}

	return spans
}
