//go:build !nogtksource

package window

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"libdb.so/gotk4-sourceview/pkg/gtksource/v5"
)

// newTextBuffer creates a Markdown source buffer, so that code is tagged as
// not to be spell checked.
func newTextBuffer() *gtk.TextBuffer {
	languageManager := gtksource.LanguageManagerGetDefault()
	buffer := gtksource.NewBuffer(nil)

	markdownLanguage := languageManager.Language("markdown")
	if markdownLanguage != nil {
		buffer.SetLanguage(markdownLanguage)
	} else {
		slog.Warn(
			"language 'markdown' not found in gtksource, not setting one",
			"languages", languageManager.LanguageIDs())
	}

	return &buffer.TextBuffer
}
