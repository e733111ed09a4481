// Package checkdialog provides a dialog that walks through the misspelled
// words of a buffer one at a time.
package checkdialog

import (
	"context"
	"fmt"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotkit/app"
	"github.com/diamondburned/gotkit/app/locale"
	"github.com/diamondburned/gotkit/gtkutil/cssutil"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"libdb.so/inlinespell/internal/inline"
	"libdb.so/inlinespell/internal/spell"
	"libdb.so/inlinespell/internal/words"
)

var dialogCSS = cssutil.Applier("checkdialog", `
	.checkdialog-content {
		padding: 12px;
	}
	.checkdialog-word {
		font-weight: bold;
		font-size: 1.2em;
	}
	.checkdialog-status {
		opacity: 0.75;
	}
`)

// Dialog is the checker dialog.
type Dialog struct {
	*adw.Dialog
	ctx context.Context
	nav *inline.Navigator

	word    words.Word
	hasWord bool
	found   int
	changed int

	wordLabel   *gtk.Label
	entry       *gtk.Entry
	suggestions *gtk.ListBox
	status      *gtk.Label
	buttons     []*gtk.Button
}

// Show creates and presents a dialog checking buf with provider.
func Show(ctx context.Context, buf inline.Buffer, provider spell.Checker) *Dialog {
	d := New(ctx, buf, provider)
	d.Present(app.GTKWindowFromContext(ctx))
	return d
}

// New creates a dialog checking buf with provider from its beginning.
func New(ctx context.Context, buf inline.Buffer, provider spell.Checker) *Dialog {
	d := Dialog{
		ctx: ctx,
		nav: inline.NewNavigator(buf, provider),
	}

	d.wordLabel = gtk.NewLabel("")
	d.wordLabel.AddCSSClass("checkdialog-word")
	d.wordLabel.SetXAlign(0)
	d.wordLabel.SetSelectable(true)

	d.entry = gtk.NewEntry()
	d.entry.SetPlaceholderText(locale.Get("Change to"))
	d.entry.ConnectActivate(d.change)

	d.suggestions = gtk.NewListBox()
	d.suggestions.AddCSSClass("boxed-list")
	d.suggestions.SetSelectionMode(gtk.SelectionSingle)
	d.suggestions.ConnectRowSelected(func(row *gtk.ListBoxRow) {
		if row != nil {
			d.entry.SetText(row.Name())
		}
	})
	d.suggestions.ConnectRowActivated(func(row *gtk.ListBoxRow) {
		d.entry.SetText(row.Name())
		d.change()
	})

	suggestionScroll := gtk.NewScrolledWindow()
	suggestionScroll.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	suggestionScroll.SetVExpand(true)
	suggestionScroll.SetMinContentHeight(150)
	suggestionScroll.SetChild(d.suggestions)

	buttonGrid := gtk.NewGrid()
	buttonGrid.SetRowSpacing(6)
	buttonGrid.SetColumnSpacing(6)
	buttonGrid.SetColumnHomogeneous(true)

	for i, b := range []struct {
		label string
		f     func()
	}{
		{locale.Get("_Ignore"), d.next},
		{locale.Get("Ignore _All"), d.ignoreAll},
		{locale.Get("Cha_nge"), d.change},
		{locale.Get("Change A_ll"), d.changeAll},
		{locale.Get("_Add to Dictionary"), d.addToPersonal},
		{locale.Get("Check _Word"), d.checkWord},
	} {
		button := gtk.NewButtonWithMnemonic(b.label)
		button.ConnectClicked(b.f)
		buttonGrid.Attach(button, i%2, i/2, 1, 1)
		d.buttons = append(d.buttons, button)
	}

	d.status = gtk.NewLabel("")
	d.status.AddCSSClass("checkdialog-status")
	d.status.SetXAlign(0)
	d.status.SetWrap(true)

	box := gtk.NewBox(gtk.OrientationVertical, 12)
	box.AddCSSClass("checkdialog-content")
	box.Append(d.wordLabel)
	box.Append(d.entry)
	box.Append(suggestionScroll)
	box.Append(buttonGrid)
	box.Append(d.status)

	header := adw.NewHeaderBar()

	toolbar := adw.NewToolbarView()
	toolbar.AddTopBar(header)
	toolbar.SetContent(box)

	d.Dialog = adw.NewDialog()
	d.Dialog.SetTitle(app.FromContext(ctx).SuffixedTitle(locale.Get("Check Spelling")))
	d.Dialog.SetContentWidth(360)
	d.Dialog.SetChild(toolbar)
	dialogCSS(d)

	esc := gtk.NewEventControllerKey()
	esc.ConnectKeyPressed(func(val, _ uint, state gdk.ModifierType) bool {
		if val == gdk.KEY_Escape {
			d.Close()
			return true
		}
		return false
	})
	d.AddController(esc)

	d.next()
	return &d
}

// next moves to the next misspelled word.
func (d *Dialog) next() {
	for {
		w, ok, err := d.nav.Next()
		if err != nil {
			// The failing word is skipped by the navigator.
			app.Error(d.ctx, errors.Wrap(err, "cannot check word"))
			continue
		}
		if !ok {
			d.finish()
			return
		}

		d.found++
		d.setWord(w)
		return
	}
}

func (d *Dialog) setWord(w words.Word) {
	d.word, d.hasWord = w, true
	d.wordLabel.SetText(w.Text)

	suggestions := d.nav.Provider().Suggestions(w.Normalized())
	d.setSuggestions(suggestions)

	if len(suggestions) > 0 {
		d.entry.SetText(suggestions[0])
		d.suggestions.SelectRow(d.suggestions.RowAtIndex(0))
	} else {
		d.entry.SetText("")
	}

	for _, b := range d.buttons {
		b.SetSensitive(true)
	}
	d.updateStatus(locale.Get("Misspelled word"))
}

func (d *Dialog) setSuggestions(suggestions []string) {
	d.suggestions.RemoveAll()
	for _, s := range suggestions {
		label := gtk.NewLabel(s)
		label.SetXAlign(0)

		row := gtk.NewListBoxRow()
		row.SetName(s)
		row.SetChild(label)
		d.suggestions.Append(row)
	}
}

// checkWord checks the word in the entry and lists its suggestions. The entry
// is left as typed.
func (d *Dialog) checkWord() {
	correct, suggestions, err := d.nav.CheckWord(d.entry.Text())
	if err != nil {
		app.Error(d.ctx, errors.Wrap(err, "cannot check word"))
		return
	}

	d.setSuggestions(suggestions)
	if correct {
		d.updateStatus(locale.Get("Correct spelling"))
	} else {
		d.updateStatus(locale.Get("Misspelled word"))
	}
}

func (d *Dialog) finish() {
	d.word, d.hasWord = words.Word{}, false
	d.wordLabel.SetText(locale.Get("Completed spell checking"))
	d.entry.SetText("")
	d.suggestions.RemoveAll()

	for _, b := range d.buttons {
		b.SetSensitive(false)
	}
	d.updateStatus("")
}

func (d *Dialog) updateStatus(prefix string) {
	status := fmt.Sprintf(
		locale.Get("%s found, %s changed"),
		pluralWords(d.found), pluralWords(d.changed))
	if prefix != "" {
		status = prefix + " · " + status
	}
	d.status.SetText(status)
}

func pluralWords(n int) string {
	if n == 1 {
		return locale.Get("1 word")
	}
	return fmt.Sprintf(locale.Get("%s words"), humanize.Comma(int64(n)))
}

func (d *Dialog) ignoreAll() {
	if d.hasWord {
		d.nav.Provider().AddToSession(d.word.Normalized())
	}
	d.next()
}

func (d *Dialog) addToPersonal() {
	if d.hasWord {
		d.nav.Provider().AddToPersonal(d.word.Normalized())
	}
	d.next()
}

func (d *Dialog) change() {
	replacement := d.entry.Text()
	if !d.hasWord || replacement == "" {
		return
	}

	if err := d.nav.Change(d.word, replacement); err != nil {
		app.Error(d.ctx, errors.Wrap(err, "cannot change word"))
	} else {
		d.changed++
	}
	d.next()
}

func (d *Dialog) changeAll() {
	replacement := d.entry.Text()
	if !d.hasWord || replacement == "" {
		return
	}

	n, err := d.nav.ChangeAll(d.word, replacement)
	if err != nil {
		app.Error(d.ctx, errors.Wrap(err, "cannot change words"))
	}
	d.changed += n
	d.next()
}
