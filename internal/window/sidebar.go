package window

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotkit/app/locale"
	"github.com/diamondburned/gotkit/gtkutil/cssutil"
	"libdb.so/inlinespell/internal/gtkspell"
	"libdb.so/inlinespell/internal/spell"
)

var sidebarCSS = cssutil.Applier("window-sidebar", `
	.window-sidebar {
		padding: 12px;
	}
	.window-sidebar-heading {
		font-weight: bold;
		margin-top: 6px;
	}
`)

// Sidebar holds the spelling controls of the window.
type Sidebar struct {
	*gtk.Box
	Language  *gtk.Button
	Highlight *gtk.CheckButton
}

// NewSidebar creates the sidebar. Its buttons activate the window actions.
func NewSidebar() *Sidebar {
	s := Sidebar{}

	checkButton := gtk.NewButtonWithMnemonic(locale.Get("_Check Spelling…"))
	checkButton.SetActionName("win.check-spelling")

	languageHeading := gtk.NewLabel(locale.Get("Language"))
	languageHeading.AddCSSClass("window-sidebar-heading")
	languageHeading.SetXAlign(0)

	s.Language = gtk.NewButtonWithLabel(locale.Get("No Language"))
	s.Language.SetActionName("win.choose-language")

	s.Highlight = gtk.NewCheckButtonWithMnemonic(locale.Get("_Highlight Misspelled Words"))
	s.Highlight.SetActive(gtkspell.HighlightMisspelled.Value())
	s.Highlight.ConnectToggled(func() {
		if active := s.Highlight.Active(); active != gtkspell.HighlightMisspelled.Value() {
			gtkspell.HighlightMisspelled.Publish(active)
		}
	})
	unbind := gtkspell.HighlightMisspelled.Subscribe(func() {
		s.Highlight.SetActive(gtkspell.HighlightMisspelled.Value())
	})

	clearButton := gtk.NewButtonWithMnemonic(locale.Get("_Forget Ignored Words"))
	clearButton.SetActionName("win.clear-session")

	changeButton := gtk.NewButtonWithMnemonic(locale.Get("Change _Buffer"))
	changeButton.SetActionName("win.change-buffer")

	s.Box = gtk.NewBox(gtk.OrientationVertical, 6)
	s.Box.Append(checkButton)
	s.Box.Append(languageHeading)
	s.Box.Append(s.Language)
	s.Box.Append(s.Highlight)
	s.Box.Append(clearButton)
	s.Box.Append(changeButton)
	s.Box.ConnectDestroy(unbind)
	sidebarCSS(s)

	return &s
}

// SetLanguage shows lang as the current language.
func (s *Sidebar) SetLanguage(lang *spell.Language) {
	if lang == nil {
		s.Language.SetLabel(locale.Get("No Language"))
		s.Language.SetTooltipText("")
		return
	}
	s.Language.SetLabel(lang.Name())
	s.Language.SetTooltipText(lang.Code)
}
