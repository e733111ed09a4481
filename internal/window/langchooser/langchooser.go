// Package langchooser provides a searchable dialog to pick a spelling
// language.
package langchooser

import (
	"context"

	"github.com/diamondburned/adaptive"
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotkit/app"
	"github.com/diamondburned/gotkit/app/locale"
	"libdb.so/inlinespell/internal/spell"
)

const searchLimit = 50

// Chooser lists languages filtered by a search entry.
type Chooser struct {
	*adw.Dialog
	languages []spell.Language
	current   *spell.Language
	shown     []spell.Language
	chosen    func(spell.Language)

	search *gtk.SearchEntry
	list   *gtk.ListBox
}

// Show creates and presents a chooser. chosen is called with the picked
// language before the dialog closes.
func Show(ctx context.Context, langs []spell.Language, current *spell.Language, chosen func(spell.Language)) *Chooser {
	c := New(ctx, langs, current, chosen)
	c.Present(app.GTKWindowFromContext(ctx))
	return c
}

// New creates a chooser over langs with current selected.
func New(ctx context.Context, langs []spell.Language, current *spell.Language, chosen func(spell.Language)) *Chooser {
	c := Chooser{
		languages: langs,
		current:   current,
		chosen:    chosen,
	}

	placeholder := adaptive.NewStatusPage()
	placeholder.SetIconName("edit-find-symbolic")
	placeholder.Icon.SetOpacity(0.45)

	c.list = gtk.NewListBox()
	c.list.AddCSSClass("navigation-sidebar")
	c.list.SetSelectionMode(gtk.SelectionBrowse)
	c.list.SetActivateOnSingleClick(true)
	c.list.SetPlaceholder(placeholder)
	c.list.ConnectRowActivated(func(row *gtk.ListBoxRow) {
		c.choose(row.Index())
	})

	scroll := gtk.NewScrolledWindow()
	scroll.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scroll.SetVExpand(true)
	scroll.SetChild(c.list)

	c.search = gtk.NewSearchEntry()
	c.search.SetHExpand(true)
	c.search.SetObjectProperty("placeholder-text", locale.Get("Search Languages"))
	c.search.ConnectSearchChanged(c.update)
	c.search.ConnectActivate(func() {
		if row := c.list.SelectedRow(); row != nil {
			c.choose(row.Index())
		}
	})

	header := adw.NewHeaderBar()
	header.SetTitleWidget(c.search)

	toolbar := adw.NewToolbarView()
	toolbar.AddTopBar(header)
	toolbar.SetContent(scroll)

	c.Dialog = adw.NewDialog()
	c.Dialog.SetTitle(app.FromContext(ctx).SuffixedTitle(locale.Get("Spelling Language")))
	c.Dialog.SetContentWidth(400)
	c.Dialog.SetContentHeight(400)
	c.Dialog.SetChild(toolbar)
	c.Dialog.ConnectShow(func() { c.search.GrabFocus() })

	keyCtrl := gtk.NewEventControllerKey()
	keyCtrl.ConnectKeyPressed(func(val, _ uint, state gdk.ModifierType) bool {
		switch val {
		case gdk.KEY_Up:
			return c.move(-1)
		case gdk.KEY_Down:
			return c.move(+1)
		case gdk.KEY_Escape:
			c.Close()
			return true
		default:
			return false
		}
	})
	c.search.AddController(keyCtrl)
	c.search.SetKeyCaptureWidget(c)

	c.update()
	return &c
}

func (c *Chooser) update() {
	c.shown = spell.FilterLanguages(c.languages, c.search.Text(), searchLimit)
	c.list.RemoveAll()

	for _, lang := range c.shown {
		row := adw.NewActionRow()
		row.SetTitle(lang.Name())
		row.SetSubtitle(lang.Code)
		row.SetUseMarkup(false)
		row.SetActivatable(true)

		if lang.Equal(c.current) {
			check := gtk.NewImageFromIconName("object-select-symbolic")
			row.AddSuffix(check)
		}

		c.list.Append(row)
	}

	if len(c.shown) > 0 {
		c.list.SelectRow(c.list.RowAtIndex(0))
	}
}

func (c *Chooser) move(delta int) bool {
	row := c.list.SelectedRow()
	if row == nil {
		return false
	}

	next := c.list.RowAtIndex(row.Index() + delta)
	if next == nil {
		return false
	}

	c.list.SelectRow(next)
	return true
}

func (c *Chooser) choose(i int) {
	if i < 0 || i >= len(c.shown) {
		return
	}
	if c.chosen != nil {
		c.chosen(c.shown[i])
	}
	c.Close()
}
