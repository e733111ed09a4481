// Package backbutton provides the header button that reveals the spelling
// sidebar when the window is too narrow to show it next to the text.
package backbutton

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Icon is the icon name of the button.
const Icon = "sidebar-show-symbolic"

// BackButton toggles the sidebar of an adw.OverlaySplitView. It is only
// revealed while the split view is collapsed.
type BackButton struct {
	*gtk.Revealer
	Button *gtk.ToggleButton
}

// New creates a hidden button. Call ConnectSplitView to use it.
func New() *BackButton {
	button := gtk.NewToggleButton()
	button.SetIconName(Icon)
	button.SetTooltipText("Spelling Options")
	button.SetSensitive(false)
	button.SetVAlign(gtk.AlignCenter)

	revealer := gtk.NewRevealer()
	revealer.AddCSSClass("sidebar-reveal-button")
	revealer.SetTransitionType(gtk.RevealerTransitionTypeCrossfade)
	revealer.SetChild(button)
	revealer.SetRevealChild(false)

	return &BackButton{
		Revealer: revealer,
		Button:   button,
	}
}

// ConnectSplitView binds the button to the sidebar of view.
func (b *BackButton) ConnectSplitView(view *adw.OverlaySplitView) {
	view.NotifyProperty("show-sidebar", func() {
		b.Button.SetActive(view.ShowSidebar())
	})

	view.NotifyProperty("collapsed", func() {
		collapsed := view.Collapsed()
		b.SetRevealChild(collapsed)
		b.Button.SetSensitive(collapsed)
	})

	// "clicked" instead of "notify::active" so that setting the state above
	// does not loop back.
	b.Button.ConnectClicked(func() {
		view.SetShowSidebar(b.Button.Active())
	})
}
