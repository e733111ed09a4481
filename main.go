package main

import (
	"context"

	"github.com/diamondburned/adaptive"
	"github.com/diamondburned/gotkit/app"
	"github.com/diamondburned/gotkit/app/prefs"
	"github.com/diamondburned/gotkit/components/logui"
	"github.com/diamondburned/gotkit/components/prefui"
	"github.com/diamondburned/gotkit/gtkutil/cssutil"
	"libdb.so/inlinespell/internal/spell"
	"libdb.so/inlinespell/internal/window"
	"libdb.so/inlinespell/internal/window/about"

	_ "github.com/diamondburned/gotkit/gtkutil/aggressivegc"
)

var _ = cssutil.WriteCSS(`
	window.background,
	window.background.solid-csd {
		background-color: @theme_bg_color;
	}
`)

func main() {
	m := manager{}
	m.app = app.New(context.Background(), "so.libdb.inlinespell", "Inline Spell")
	m.app.AddJSONActions(map[string]interface{}{
		"app.preferences":    func() { prefui.ShowDialog(m.win.Context()) },
		"app.about":          func() { about.New(m.win.Context()).Present() },
		"app.logs":           func() { logui.ShowDefaultViewer(m.win.Context()) },
		"app.check-spelling": m.checkSpelling,
		"app.quit":           func() { m.app.Quit() },
	})
	m.app.AddActionShortcuts(map[string]string{
		"<Ctrl>Q": "app.quit",
	})
	m.app.ConnectActivate(func() { m.activate(m.app.Context()) })
	m.app.RunMain()
}

type manager struct {
	app      *app.Application
	win      *window.Window
	provider spell.Checker
}

func (m *manager) checkSpelling() {
	if m.win != nil {
		m.win.ShowCheckDialog()
	}
}

func (m *manager) activate(ctx context.Context) {
	adaptive.Init()

	if m.win != nil {
		m.win.Present()
		return
	}

	// The provider is shared by every window so that ignored words and the
	// language apply everywhere.
	if m.provider == nil {
		m.provider = window.NewProvider()
	}

	m.win = window.NewWindow(ctx, m.provider)
	m.win.Show()

	prefs.AsyncLoadSaved(ctx, func(err error) {
		if err != nil {
			app.Error(ctx, err)
		}
	})
}
