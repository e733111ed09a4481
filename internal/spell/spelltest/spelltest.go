// Package spelltest provides a deterministic spell.Checker for tests.
package spelltest

import (
	"slices"
	"strings"

	"libdb.so/inlinespell/internal/spell"
)

// Checker is a spell.Checker backed by a fixed word set. Lookups are case
// sensitive. The zero value has no language and accepts every word.
type Checker struct {
	spell.Events

	// Known is the dictionary. Words must be in ASCII apostrophe form.
	Known map[string]bool
	// Suggest maps a misspelled word to its suggestions.
	Suggest map[string][]string
	// Errors makes CheckWord fail for the given words.
	Errors map[string]error

	// Checked records every word given to CheckWord, in order.
	Checked []string

	personal    []string
	session     map[string]bool
	corrections map[string]string
	lang        *spell.Language
}

var _ spell.Checker = (*Checker)(nil)

// New returns a checker for the "en_US" language knowing words.
func New(words ...string) *Checker {
	c := &Checker{
		Known: make(map[string]bool, len(words)),
		lang:  &spell.Language{Code: "en_US"},
	}
	for _, word := range words {
		c.Known[word] = true
	}
	return c
}

// CheckWord implements spell.Checker.
func (c *Checker) CheckWord(word string) (bool, error) {
	c.Checked = append(c.Checked, word)

	if err, ok := c.Errors[word]; ok {
		return false, &spell.DictionaryError{Word: word, Err: err}
	}
	if c.lang == nil {
		return true, nil
	}

	return c.Known[word] || c.session[word] || slices.Contains(c.personal, word), nil
}

// Suggestions implements spell.Checker.
func (c *Checker) Suggestions(word string) []string {
	var out []string
	if correction, ok := c.corrections[word]; ok {
		out = append(out, correction)
	}
	for _, s := range c.Suggest[word] {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// AddToPersonal implements spell.Checker.
func (c *Checker) AddToPersonal(word string) {
	c.personal = append(c.personal, word)
	c.Emit(spell.Event{Kind: spell.WordAddedToPersonal, Word: word})
}

// AddToSession implements spell.Checker.
func (c *Checker) AddToSession(word string) {
	if c.session == nil {
		c.session = make(map[string]bool)
	}
	c.session[word] = true
	c.Emit(spell.Event{Kind: spell.WordAddedToSession, Word: word})
}

// SetCorrection implements spell.Checker.
func (c *Checker) SetCorrection(word, replacement string) {
	if c.corrections == nil {
		c.corrections = make(map[string]string)
	}
	c.corrections[word] = replacement
}

// ClearSession implements spell.Checker.
func (c *Checker) ClearSession() {
	c.session = nil
	c.Emit(spell.Event{Kind: spell.SessionCleared})
}

// SetLanguage implements spell.Checker. A nil language selects "en_US".
func (c *Checker) SetLanguage(lang *spell.Language) {
	if lang == nil {
		lang = &spell.Language{Code: "en_US"}
	}
	if c.lang.Equal(lang) {
		return
	}
	c.lang = lang
	c.Emit(spell.Event{Kind: spell.LanguageChanged, Language: lang})
}

// Language implements spell.Checker.
func (c *Checker) Language() *spell.Language {
	return c.lang
}

// Personal returns the personal dictionary.
func (c *Checker) Personal() []string {
	return slices.Clone(c.personal)
}

// InSession reports whether word was added to the session.
func (c *Checker) InSession(word string) bool {
	return c.session[word]
}

// CheckedCount returns how many times word was checked.
func (c *Checker) CheckedCount(word string) int {
	var n int
	for _, checked := range c.Checked {
		if checked == word {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls.
func (c *Checker) Reset() {
	c.Checked = nil
}

// String lists the recorded words for test failures.
func (c *Checker) String() string {
	return strings.Join(c.Checked, " ")
}
