//go:build !nospellcheck

// Package libspelling implements a spell.Checker on top of libspelling.
// Methods must be called from the main thread.
package libspelling

import (
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"libdb.so/gotk4-spelling/pkg/spelling"
	"libdb.so/inlinespell/internal/spell"
)

// Checker wraps a libspelling checker. Corrections are kept in memory since
// libspelling does not record them.
type Checker struct {
	spell.Events

	checker     *spelling.Checker
	corrections map[string]string
}

var (
	_ spell.Checker = (*Checker)(nil)
	_ spell.Lister  = (*Checker)(nil)
)

// New creates a checker using the default libspelling checker.
func New() *Checker {
	return &Checker{checker: spelling.CheckerGetDefault()}
}

func (c *Checker) provider() *spelling.Provider {
	if p := c.checker.Provider(); p != nil {
		return p
	}
	return spelling.ProviderGetDefault()
}

// Languages implements spell.Lister.
func (c *Checker) Languages() []spell.Language {
	model := c.provider().ListLanguages()
	if model == nil {
		return nil
	}

	n := model.NItems()
	langs := make([]spell.Language, 0, n)

	for i := uint(0); i < n; i++ {
		obj := model.Item(i)
		if obj == nil {
			continue
		}

		lang, ok := obj.Cast().(*spelling.Language)
		if !ok {
			continue
		}

		parsed, err := spell.ParseLanguage(lang.Code())
		if err != nil {
			slog.Debug(
				"libspelling: skipping language",
				"code", lang.Code(),
				"err", err)
			continue
		}
		langs = append(langs, parsed)
	}

	slices.SortFunc(langs, func(a, b spell.Language) int {
		return strings.Compare(a.Code, b.Code)
	})

	return langs
}

// Language implements spell.Checker.
func (c *Checker) Language() *spell.Language {
	code := c.checker.Language()
	if code == "" || !c.provider().SupportsLanguage(code) {
		return nil
	}

	lang, err := spell.ParseLanguage(code)
	if err != nil {
		return &spell.Language{Code: code}
	}
	return &lang
}

// SetLanguage implements spell.Checker.
func (c *Checker) SetLanguage(lang *spell.Language) {
	code := c.provider().DefaultCode()
	if lang != nil {
		code = lang.Code
	}

	if code == c.checker.Language() {
		return
	}

	if !c.provider().SupportsLanguage(code) {
		slog.Warn(
			"libspelling: language not supported",
			"lang", code)
	}

	c.checker.SetLanguage(code)
	c.Emit(spell.Event{Kind: spell.LanguageChanged, Language: c.Language()})
}

// CheckWord implements spell.Checker.
func (c *Checker) CheckWord(word string) (bool, error) {
	if c.Language() == nil {
		return true, nil
	}
	return c.checker.CheckWord(word, len(word)), nil
}

// Suggestions implements spell.Checker.
func (c *Checker) Suggestions(word string) []string {
	var out []string
	if correction, ok := c.corrections[word]; ok {
		out = append(out, correction)
	}

	for _, s := range c.checker.ListCorrections(word) {
		if utf8.ValidString(s) && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}

	return out
}

// AddToPersonal implements spell.Checker.
func (c *Checker) AddToPersonal(word string) {
	c.checker.AddWord(word)
	c.Emit(spell.Event{Kind: spell.WordAddedToPersonal, Word: word})
}

// AddToSession implements spell.Checker.
func (c *Checker) AddToSession(word string) {
	c.checker.IgnoreWord(word)
	c.Emit(spell.Event{Kind: spell.WordAddedToSession, Word: word})
}

// ClearSession implements spell.Checker. libspelling cannot forget ignored
// words, so the checker is replaced by a fresh one for the same language.
func (c *Checker) ClearSession() {
	c.checker = spelling.NewChecker(c.provider(), c.checker.Language())
	c.Emit(spell.Event{Kind: spell.SessionCleared})
}

// SetCorrection implements spell.Checker.
func (c *Checker) SetCorrection(word, replacement string) {
	if c.corrections == nil {
		c.corrections = make(map[string]string)
	}
	c.corrections[word] = replacement
}
