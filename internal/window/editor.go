package window

import (
	"context"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotkit/gtkutil/cssutil"
	"libdb.so/inlinespell/internal/gtkspell"
	"libdb.so/inlinespell/internal/spell"
)

const sampleText = `Spell checking is done while you type. Misspelled words such as ` +
	`"speling" or "recieve" are underlined once they scroll into view.

Right-click a word to see suggestions, add it to your personal dictionary ` +
	`or ignore it for the rest of the session. Numbers like 1,234.5 and 42 are ` +
	`never checked, and words with apostrophes like don't or it’s are one word.

` + "```" + `
code blocks are not checked: fmt.Printf("%v", thsi)
` + "```" + `
`

var editorCSS = cssutil.Applier("window-editor", `
	.window-editor textview {
		padding: 12px;
	}
`)

// Editor is the scrolled text view of the window. It owns two buffers to
// exercise the checker moving between them.
type Editor struct {
	*gtk.ScrolledWindow
	View  *gtk.TextView
	Spell *gtkspell.View

	buffers [2]*gtk.TextBuffer
	current int
}

// NewEditor creates an editor checked with provider.
func NewEditor(ctx context.Context, provider spell.Checker) *Editor {
	e := Editor{}
	e.buffers[0] = newTextBuffer()
	e.buffers[0].SetText(sampleText)
	e.buffers[1] = newTextBuffer()

	e.View = gtk.NewTextViewWithBuffer(e.buffers[0])
	e.View.SetWrapMode(gtk.WrapWordChar)
	e.View.SetVExpand(true)
	e.View.SetHExpand(true)

	e.ScrolledWindow = gtk.NewScrolledWindow()
	e.ScrolledWindow.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	e.ScrolledWindow.SetChild(e.View)
	editorCSS(e)

	e.Spell = gtkspell.NewView(ctx, e.View, provider)
	return &e
}

// ChangeBuffer swaps the view's buffer with the other one.
func (e *Editor) ChangeBuffer() {
	e.current = (e.current + 1) % len(e.buffers)
	e.View.SetBuffer(e.buffers[e.current])
}

// Destroy detaches the spell checker from the view.
func (e *Editor) Destroy() {
	e.Spell.Destroy()
}
