package gtkspell

import (
	"context"
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotkit/app"
	"github.com/pkg/errors"
	"libdb.so/inlinespell/internal/inline"
	"libdb.so/inlinespell/internal/signaling"
	"libdb.so/inlinespell/internal/spell"
	"libdb.so/inlinespell/internal/words"
)

// ActionGroup is the name the spelling actions of a View are inserted under.
const ActionGroup = "spelling"

// View adds inline spell checking and a spelling context menu to a
// gtk.TextView. Each View owns its own actions and menu.
type View struct {
	ctx      context.Context
	view     *gtk.TextView
	provider spell.Checker

	buffer  *TextBuffer
	checker *inline.Checker

	actions  *gio.SimpleActionGroup
	correct  *gio.SimpleAction
	add      *gio.SimpleAction
	ignore   *gio.SimpleAction
	language *gio.SimpleAction
	hasWords *gio.SimpleAction

	menu     *gio.Menu
	prevMenu gio.MenuModeller

	word    words.Word
	hasWord bool

	viewSignals     signaling.DisconnectStack
	bufferSignals   signaling.DisconnectStack
	adjustment      signaling.DisconnectStack
	providerSignals signaling.DisconnectStack
}

// NewView enables spell checking on view using provider, which may be nil.
// Call Destroy to remove it again.
func NewView(ctx context.Context, view *gtk.TextView, provider spell.Checker) *View {
	v := &View{
		ctx:  ctx,
		view: view,
		menu: gio.NewMenu(),
	}

	v.initActions()
	view.InsertActionGroup(ActionGroup, v.actions)

	v.prevMenu = view.ExtraMenu()
	if keepExistingMenu.Value() && v.prevMenu != nil {
		combined := gio.NewMenu()
		combined.AppendSection("", v.menu)
		combined.AppendSection("", v.prevMenu)
		view.SetExtraMenu(combined)
	} else {
		view.SetExtraMenu(v.menu)
	}

	click := gtk.NewGestureClick()
	click.SetButton(gdk.BUTTON_SECONDARY)
	click.SetPropagationPhase(gtk.PhaseCapture)
	click.ConnectPressed(func(nPress int, x, y float64) {
		bx, by := view.WindowToBufferCoords(gtk.TextWindowWidget, int(x), int(y))
		if iter, ok := view.IterAtLocation(bx, by); ok {
			v.updateMenu(iter.Offset())
		} else {
			v.updateMenu(-1)
		}
	})
	view.AddController(click)
	v.viewSignals.Push(func() { view.RemoveController(click) })

	bufferHandle := view.NotifyProperty("buffer", v.bindBuffer)
	adjustmentHandle := view.NotifyProperty("vadjustment", v.bindAdjustment)
	v.viewSignals.Push(func() {
		view.HandlerDisconnect(bufferHandle)
		view.HandlerDisconnect(adjustmentHandle)
	})

	v.viewSignals.Push(HighlightMisspelled.Subscribe(func() {
		v.SetEnabled(HighlightMisspelled.Value())
	}))
	v.viewSignals.Push(languageMenu.Subscribe(func() {
		v.updateMenu(-1)
	}))

	v.SetProvider(provider)
	v.bindAdjustment()
	v.bindBuffer()

	return v
}

// Destroy detaches the checker and restores the view's previous menu.
func (v *View) Destroy() {
	v.unbindBuffer()
	v.adjustment.Disconnect()
	v.providerSignals.Disconnect()
	v.viewSignals.Disconnect()

	v.view.SetExtraMenu(v.prevMenu)
	v.view.InsertActionGroup(ActionGroup, nil)
}

// TextView returns the wrapped view.
func (v *View) TextView() *gtk.TextView {
	return v.view
}

// Checker returns the inline checker of the current buffer. It is nil while
// highlighting is disabled.
func (v *View) Checker() *inline.Checker {
	return v.checker
}

// Buffer returns the adapter of the view's current buffer.
func (v *View) Buffer() *TextBuffer {
	return v.buffer
}

// Provider returns the spelling provider.
func (v *View) Provider() spell.Checker {
	return v.provider
}

// SetProvider changes the spelling provider and checks the buffer again.
func (v *View) SetProvider(provider spell.Checker) {
	v.providerSignals.Disconnect()
	v.provider = provider

	if provider != nil {
		v.providerSignals.Push(provider.Subscribe(func(ev spell.Event) {
			if ev.Kind == spell.LanguageChanged {
				v.updateLanguageState()
			}
		}))
	}

	if v.checker != nil {
		v.checker.SetProvider(provider)
	}

	v.updateLanguageState()
	v.updateMenu(-1)
}

// Enabled returns true if misspelled words are highlighted.
func (v *View) Enabled() bool {
	return v.checker != nil
}

// SetEnabled turns highlighting on or off.
func (v *View) SetEnabled(enabled bool) {
	if enabled == v.Enabled() || v.buffer == nil {
		return
	}

	if enabled {
		v.attach()
	} else {
		v.detach()
	}
	v.updateMenu(-1)
}

func (v *View) bindBuffer() {
	v.unbindBuffer()

	buffer := v.view.Buffer()
	if buffer == nil {
		return
	}

	v.buffer = NewTextBuffer(buffer)

	cursorHandle := buffer.NotifyProperty("cursor-position", func() {
		offset := buffer.ObjectProperty("cursor-position").(int)
		v.updateMenu(offset)
	})
	v.bufferSignals.Push(func() { buffer.HandlerDisconnect(cursorHandle) })

	if HighlightMisspelled.Value() {
		v.attach()
	}
}

func (v *View) unbindBuffer() {
	v.detach()
	v.bufferSignals.Disconnect()

	if v.buffer != nil {
		v.buffer.Destroy()
		v.buffer = nil
	}
}

func (v *View) attach() {
	v.checker = inline.Attach(v.buffer, v.provider,
		inline.WithScheduler(DefaultIdleScheduler),
		inline.WithBatchSize(wordsPerIdle.Value()),
		inline.WithErrorHandler(func(err error) {
			app.Error(v.ctx, errors.Wrap(err, "cannot check spelling"))
		}),
	)
	v.updateVisibleRange()
}

func (v *View) detach() {
	if v.checker != nil {
		v.checker.Detach()
		v.checker = nil
	}
	v.word, v.hasWord = words.Word{}, false
}

func (v *View) bindAdjustment() {
	v.adjustment.Disconnect()

	adj := v.view.VAdjustment()
	if adj == nil {
		return
	}

	valueHandle := adj.ConnectValueChanged(v.updateVisibleRange)
	changedHandle := adj.ConnectChanged(v.updateVisibleRange)
	v.adjustment.Push(func() {
		adj.HandlerDisconnect(valueHandle)
		adj.HandlerDisconnect(changedHandle)
	})
}

// updateVisibleRange reports the lines currently on screen to the checker.
// Until the view has a size the whole buffer is left visible.
func (v *View) updateVisibleRange() {
	if v.checker == nil {
		return
	}

	rect := v.view.VisibleRect()
	if rect.Width() <= 0 || rect.Height() <= 0 {
		return
	}

	start, _ := v.view.IterAtLocation(rect.X(), rect.Y())
	end, _ := v.view.IterAtLocation(rect.X()+rect.Width(), rect.Y()+rect.Height())
	if !end.EndsLine() {
		end.ForwardToLineEnd()
	}

	v.checker.OnVisibleRangeChanged(start.Offset(), end.Offset())
}

func (v *View) initActions() {
	stringType := glib.NewVariantType("s")

	v.correct = gio.NewSimpleAction("correct", stringType)
	v.correct.ConnectActivate(func(param *glib.Variant) {
		if v.checker == nil || !v.hasWord || param == nil {
			return
		}
		if err := v.checker.Correct(v.word, param.String()); err != nil {
			slog.Warn(
				"gtkspell: cannot correct word",
				"word", v.word.Text,
				"err", err)
		}
		v.updateMenu(-1)
	})

	v.add = gio.NewSimpleAction("add", nil)
	v.add.ConnectActivate(func(*glib.Variant) {
		if v.checker != nil && v.hasWord {
			v.checker.AddToPersonal(v.word)
		}
		v.updateMenu(-1)
	})

	v.ignore = gio.NewSimpleAction("ignore-all", nil)
	v.ignore.ConnectActivate(func(*glib.Variant) {
		if v.checker != nil && v.hasWord {
			v.checker.IgnoreAll(v.word)
		}
		v.updateMenu(-1)
	})

	v.language = gio.NewSimpleActionStateful("language", stringType, glib.NewVariantString(""))
	v.language.ConnectActivate(func(param *glib.Variant) {
		if v.provider == nil || param == nil {
			return
		}
		v.provider.SetLanguage(&spell.Language{Code: param.String()})
	})

	v.hasWords = gio.NewSimpleActionStateful("has-suggestions", nil, glib.NewVariantBoolean(false))
	v.hasWords.SetEnabled(false)

	v.actions = gio.NewSimpleActionGroup()
	v.actions.AddAction(v.correct)
	v.actions.AddAction(v.add)
	v.actions.AddAction(v.ignore)
	v.actions.AddAction(v.language)
	v.actions.AddAction(v.hasWords)
}

func (v *View) updateLanguageState() {
	var code string
	if v.provider != nil {
		if lang := v.provider.Language(); lang != nil {
			code = lang.Code
		}
	}
	v.language.SetState(glib.NewVariantString(code))
	v.language.SetEnabled(v.provider != nil)
}

// updateMenu rebuilds the menu for the misspelled word at offset. A negative
// offset clears the word.
func (v *View) updateMenu(offset int) {
	v.word, v.hasWord = words.Word{}, false
	if v.checker != nil && offset >= 0 {
		v.word, v.hasWord = v.checker.WordAt(offset)
	}

	var suggestions []string
	if v.hasWord {
		suggestions = v.checker.Suggestions(v.word)
	}

	v.correct.SetEnabled(len(suggestions) > 0)
	v.add.SetEnabled(v.hasWord)
	v.ignore.SetEnabled(v.hasWord)
	v.hasWords.SetState(glib.NewVariantBoolean(len(suggestions) > 0))

	var langs []spell.Language
	if lister, ok := v.provider.(spell.Lister); ok && languageMenu.Value() {
		langs = lister.Languages()
	}

	v.menu.RemoveAll()
	fillMenu(v.menu, menuContent{
		word:        v.word,
		hasWord:     v.hasWord,
		suggestions: suggestions,
		languages:   langs,
	})
}
