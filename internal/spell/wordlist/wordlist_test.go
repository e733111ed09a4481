package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"libdb.so/inlinespell/internal/spell"
)

const enDic = `8
hello/MS
world/M
spell/SMG
checker
don't
Paris/M
colour	po:noun
# comment
`

const deDic = `3
hallo
welt
straße
`

func newTestChecker(t *testing.T) (*Checker, string) {
	t.Helper()
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "en_US.UTF-8")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en_US.dic"), enDic)
	writeFile(t, filepath.Join(dir, "de_DE.dic"), deDic)

	personal := filepath.Join(dir, "personal")

	c := New(
		WithDictionaries(
			spell.Dictionary{Language: spell.Language{Code: "de_DE"}, Path: filepath.Join(dir, "de_DE.dic")},
			spell.Dictionary{Language: spell.Language{Code: "en_US"}, Path: filepath.Join(dir, "en_US.dic")},
		),
		WithPersonalDir(personal),
	)

	return c, personal
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func check(t *testing.T, c *Checker, word string) bool {
	t.Helper()
	ok, err := c.CheckWord(word)
	require.NoError(t, err)
	return ok
}

func TestReadWords(t *testing.T) {
	words, err := ReadWords(strings.NewReader(enDic))
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world", "spell", "checker", "don't", "Paris", "colour"}, words)

	words, err = ReadWords(strings.NewReader("alpha\nbeta\n\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, words)
}

func TestCheckWord(t *testing.T) {
	c, _ := newTestChecker(t)
	require.Equal(t, &spell.Language{Code: "en_US"}, c.Language())

	assert.True(t, check(t, c, "hello"))
	assert.True(t, check(t, c, "Hello"))
	assert.True(t, check(t, c, "HELLO"))
	assert.True(t, check(t, c, "paris"))
	assert.True(t, check(t, c, "don't"))
	assert.True(t, check(t, c, "colour"))
	assert.True(t, check(t, c, ""))

	assert.False(t, check(t, c, "helo"))
	assert.False(t, check(t, c, "spells"), "affixes are not expanded")
	assert.False(t, check(t, c, "naïve"), "character outside the alphabet")
}

func TestSuggestions(t *testing.T) {
	c, _ := newTestChecker(t)

	assert.Contains(t, c.Suggestions("helo"), "hello")
	assert.Contains(t, c.Suggestions("Helo"), "Hello")
	assert.Empty(t, c.Suggestions("ñññ"))

	c.SetCorrection("wrld", "world!")
	suggestions := c.Suggestions("wrld")
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "world!", suggestions[0])
}

func TestPersonalDictionary(t *testing.T) {
	c, personal := newTestChecker(t)

	var events []spell.Event
	c.Subscribe(func(ev spell.Event) { events = append(events, ev) })

	require.False(t, check(t, c, "gspell"))
	c.AddToPersonal("gspell")
	assert.True(t, check(t, c, "gspell"))
	assert.True(t, check(t, c, "Gspell"))

	assert.Equal(t, []spell.Event{{Kind: spell.WordAddedToPersonal, Word: "gspell"}}, events)

	b, err := os.ReadFile(filepath.Join(personal, "en_US.dic"))
	require.NoError(t, err)
	assert.Equal(t, "gspell\n", string(b))

	// A new checker reads it back.
	c2 := New(WithDictionaries(c.dicts...), WithPersonalDir(personal))
	assert.True(t, check(t, c2, "gspell"))

	// Session clearing does not forget personal words.
	c2.ClearSession()
	assert.True(t, check(t, c2, "gspell"))
}

func TestSession(t *testing.T) {
	c, personal := newTestChecker(t)

	var events []spell.Event
	c.Subscribe(func(ev spell.Event) { events = append(events, ev) })

	c.AddToSession("libspelling")
	assert.True(t, check(t, c, "libspelling"))

	c.ClearSession()
	assert.False(t, check(t, c, "libspelling"))

	assert.Equal(t, []spell.Event{
		{Kind: spell.WordAddedToSession, Word: "libspelling"},
		{Kind: spell.SessionCleared},
	}, events)

	_, err := os.Stat(filepath.Join(personal, "en_US.dic"))
	assert.ErrorIs(t, err, os.ErrNotExist, "session words are not saved")
}

func TestSetLanguage(t *testing.T) {
	c, _ := newTestChecker(t)

	var events []spell.Event
	c.Subscribe(func(ev spell.Event) { events = append(events, ev) })

	c.SetLanguage(&spell.Language{Code: "de_DE"})
	assert.Equal(t, "de_DE", c.Language().Code)
	assert.True(t, check(t, c, "Straße"))
	assert.False(t, check(t, c, "hello"))

	// Setting the same language again is silent.
	c.SetLanguage(&spell.Language{Code: "de_DE"})
	require.Len(t, events, 1)
	assert.Equal(t, spell.LanguageChanged, events[0].Kind)

	c.SetLanguage(&spell.Language{Code: "ja_JP"})
	assert.Nil(t, c.Language())
	assert.True(t, check(t, c, "anything"), "no language accepts everything")
	require.Len(t, events, 2)
	assert.Nil(t, events[1].Language)

	c.SetLanguage(nil)
	assert.Equal(t, "en_US", c.Language().Code)

	assert.Equal(t, []spell.Language{{Code: "de_DE"}, {Code: "en_US"}}, c.Languages())
}

func TestDefaultLanguageFromLocale(t *testing.T) {
	c, _ := newTestChecker(t)

	t.Setenv("LANG", "de_AT.UTF-8")
	c.SetLanguage(nil)
	assert.Equal(t, "de_DE", c.Language().Code)
}

func TestMissingDictionaryFile(t *testing.T) {
	c := New(
		WithDictionaries(spell.Dictionary{
			Language: spell.Language{Code: "en_US"},
			Path:     filepath.Join(t.TempDir(), "missing.dic"),
		}),
		WithPersonalDir(""),
	)

	assert.Nil(t, c.Language())
	ok, err := c.CheckWord("hello")
	assert.NoError(t, err)
	assert.True(t, ok)
}
