//go:build nogtksource

package window

import "github.com/diamondburned/gotk4/pkg/gtk/v4"

func newTextBuffer() *gtk.TextBuffer {
	return gtk.NewTextBuffer(nil)
}
