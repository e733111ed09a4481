package gtkspell

import (
	"fmt"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotkit/app/locale"
	"libdb.so/inlinespell/internal/spell"
	"libdb.so/inlinespell/internal/words"
)

// maxInlineSuggestions is the number of suggestions shown before the rest go
// into a submenu.
const maxInlineSuggestions = 5

type menuContent struct {
	word        words.Word
	hasWord     bool
	suggestions []string
	languages   []spell.Language
}

func fillMenu(menu *gio.Menu, content menuContent) {
	if content.hasWord {
		suggestions := gio.NewMenu()
		if len(content.suggestions) == 0 {
			suggestions.AppendItem(gio.NewMenuItem(locale.Get("(no suggestions)"), ""))
		}

		shown := content.suggestions[:min(len(content.suggestions), maxInlineSuggestions)]
		for _, s := range shown {
			suggestions.AppendItem(actionItem(mnemonicSafe(s), "correct", s))
		}

		if rest := content.suggestions[len(shown):]; len(rest) > 0 {
			more := gio.NewMenu()
			for _, s := range rest {
				more.AppendItem(actionItem(mnemonicSafe(s), "correct", s))
			}
			suggestions.AppendSubmenu(locale.Get("More Suggestions"), more)
		}

		menu.AppendSection("", suggestions)

		dictionary := gio.NewMenu()
		dictionary.Append(
			fmt.Sprintf(locale.Get("_Add “%s” to Dictionary"), mnemonicSafe(content.word.Text)),
			ActionGroup+".add")
		dictionary.Append(locale.Get("_Ignore All"), ActionGroup+".ignore-all")
		menu.AppendSection("", dictionary)
	}

	if len(content.languages) > 0 {
		languages := gio.NewMenu()
		for _, lang := range content.languages {
			languages.AppendItem(actionItem(lang.Name(), "language", lang.Code))
		}
		menu.AppendSubmenu(locale.Get("_Languages"), languages)
	}
}

func actionItem(label, action, target string) *gio.MenuItem {
	item := gio.NewMenuItem(label, "")
	item.SetActionAndTargetValue(ActionGroup+"."+action, glib.NewVariantString(target))
	return item
}

// mnemonicSafe escapes underscores so that they are not taken as mnemonics.
func mnemonicSafe(s string) string {
	return strings.ReplaceAll(s, "_", "__")
}
