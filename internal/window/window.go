package window

import (
	"context"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotkit/app"
	"github.com/diamondburned/gotkit/gtkutil"
	"github.com/diamondburned/gotkit/gtkutil/cssutil"
	"libdb.so/ctxt"
	"libdb.so/inlinespell/internal/signaling"
	"libdb.so/inlinespell/internal/spell"
	"libdb.so/inlinespell/internal/window/backbutton"
	"libdb.so/inlinespell/internal/window/checkdialog"
	"libdb.so/inlinespell/internal/window/langchooser"
)

// languageKey stores the code of the last chosen spelling language.
var languageKey = app.NewSingleStateKey[string]("spelling-language")

var _ = cssutil.WriteCSS(`
	.titlebar {
		background-color: @headerbar_bg_color;
	}

	window.devel .titlebar {
		background-image: cross-fade(
			5% -gtk-recolor(url("resource:/org/gnome/Adwaita/styles/assets/devel-symbolic.svg")),
			image(transparent));
		background-repeat: repeat-x;
	}
`)

// Window is the demo window: a sidebar of spelling controls next to a text
// view that is checked inline.
type Window struct {
	*adw.ApplicationWindow
	win *app.Window
	ctx context.Context

	Split   *adw.OverlaySplitView
	Sidebar *Sidebar
	Editor  *Editor

	title    *adw.WindowTitle
	provider spell.Checker
	signals  signaling.DisconnectStack
}

// NewWindow creates a new Window checking with provider.
func NewWindow(ctx context.Context, provider spell.Checker) *Window {
	appInstance := app.FromContext(ctx)

	win := adw.NewApplicationWindow(appInstance.Application)
	win.SetSizeRequest(320, 320)
	win.SetDefaultSize(800, 600)

	appWindow := app.WrapWindow(appInstance, &win.ApplicationWindow)
	ctx = app.WithWindow(ctx, appWindow)

	w := Window{
		ApplicationWindow: win,
		win:               appWindow,
		ctx:               ctx,
		provider:          provider,
	}
	w.ctx = ctxt.With(w.ctx, &w)

	w.Editor = NewEditor(w.ctx, provider)
	w.Sidebar = NewSidebar()

	back := backbutton.New()
	back.SetTransitionType(gtk.RevealerTransitionTypeSlideRight)

	w.title = adw.NewWindowTitle("", "")

	header := adw.NewHeaderBar()
	header.AddCSSClass("titlebar")
	header.PackStart(back)
	header.SetTitleWidget(w.title)

	content := adw.NewToolbarView()
	content.AddTopBar(header)
	content.SetContent(w.Editor)

	w.Split = adw.NewOverlaySplitView()
	w.Split.SetSidebar(w.Sidebar)
	w.Split.SetContent(content)
	w.Split.SetSidebarWidthFraction(0.3)
	back.ConnectSplitView(w.Split)
	win.SetContent(w.Split)

	w.initActions()
	w.restoreLanguage()

	w.signals.Push(provider.Subscribe(func(ev spell.Event) {
		if ev.Kind == spell.LanguageChanged {
			w.updateLanguage()
			if ev.Language != nil {
				languageKey.Acquire(w.ctx).Set(ev.Language.Code)
			}
		}
	}))
	win.ConnectCloseRequest(func() bool {
		w.signals.Disconnect()
		w.Editor.Destroy()
		return false
	})

	w.updateLanguage()
	w.SetTitle("")
	return &w
}

// FromContext returns the Window in ctx or nil.
func FromContext(ctx context.Context) *Window {
	w, _ := ctxt.From[*Window](ctx)
	return w
}

func (w *Window) Context() context.Context {
	return w.ctx
}

// Provider returns the window's spelling provider.
func (w *Window) Provider() spell.Checker {
	return w.provider
}

func (w *Window) initActions() {
	gtkutil.AddActions(w, map[string]func(){
		"check-spelling":  w.ShowCheckDialog,
		"choose-language": w.ShowLanguageChooser,
		"change-buffer":   w.Editor.ChangeBuffer,
		"clear-session":   w.provider.ClearSession,
	})

	gtkutil.AddActionShortcuts(w, map[string]string{
		"F7":      "win.check-spelling",
		"<Ctrl>L": "win.choose-language",
	})
}

// ShowCheckDialog opens a dialog that walks through the misspelled words.
func (w *Window) ShowCheckDialog() {
	buffer := w.Editor.Spell.Buffer()
	if buffer == nil {
		return
	}
	checkdialog.Show(w.ctx, buffer, w.provider)
}

// ShowLanguageChooser opens the language chooser.
func (w *Window) ShowLanguageChooser() {
	lister, ok := w.provider.(spell.Lister)
	if !ok {
		return
	}
	langchooser.Show(w.ctx, lister.Languages(), w.provider.Language(), func(lang spell.Language) {
		w.provider.SetLanguage(&lang)
	})
}

func (w *Window) restoreLanguage() {
	languageKey.Acquire(w.ctx).Get(func(code string) {
		lang, err := spell.ParseLanguage(code)
		if err != nil {
			return
		}
		w.provider.SetLanguage(&lang)
	})
}

func (w *Window) updateLanguage() {
	lang := w.provider.Language()

	var label string
	if lang != nil {
		label = lang.Name()
	}

	w.title.SetSubtitle(label)
	w.Sidebar.SetLanguage(lang)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	suffixed := app.FromContext(w.ctx).SuffixedTitle(title)
	w.ApplicationWindow.SetTitle(suffixed)
	w.title.SetTitle(suffixed)
}
