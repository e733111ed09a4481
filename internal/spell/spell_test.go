package spell

import (
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "en_US", want: "en_US"},
		{in: "en-US", want: "en_US"},
		{in: "de_DE.UTF-8", want: "de_DE"},
		{in: "fr_FR@euro", want: "fr_FR"},
		{in: "nl", want: "nl"},
		{in: "C", err: true},
		{in: "POSIX", err: true},
		{in: "", err: true},
		{in: "not a language", err: true},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			lang, err := ParseLanguage(test.in)
			if test.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, lang.Code)
		})
	}
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Deutsch", Language{Code: "de"}.Name())
	assert.Equal(t, "???", Language{Code: "???"}.Name())
	assert.Equal(t, "Deutsch (de)", Language{Code: "de"}.String())
}

func TestLanguageEqual(t *testing.T) {
	var a, b *Language
	assert.True(t, a.Equal(b))

	a = &Language{Code: "en_US"}
	assert.False(t, a.Equal(b))
	assert.False(t, b.Equal(a))
	assert.True(t, a.Equal(&Language{Code: "en_US"}))
}

func TestDefaultLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "C")
	t.Setenv("LANG", "pt_BR.UTF-8")

	lang, ok := DefaultLanguage()
	require.True(t, ok)
	assert.Equal(t, "pt_BR", lang.Code)

	t.Setenv("LC_ALL", "sv_SE")
	lang, ok = DefaultLanguage()
	require.True(t, ok)
	assert.Equal(t, "sv_SE", lang.Code)

	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "")
	_, ok = DefaultLanguage()
	assert.False(t, ok)
}

func TestBest(t *testing.T) {
	langs := []Language{{Code: "de_DE"}, {Code: "en_GB"}, {Code: "en_US"}}

	lang, ok := Best(Language{Code: "en_US"}, langs)
	require.True(t, ok)
	assert.Equal(t, "en_US", lang.Code)

	lang, ok = Best(Language{Code: "de_AT"}, langs)
	require.True(t, ok)
	assert.Equal(t, "de_DE", lang.Code)

	_, ok = Best(Language{Code: "ja_JP"}, langs)
	assert.False(t, ok)
}

func TestFindDictionaries(t *testing.T) {
	fsys := fstest.MapFS{
		"home/.local/share/hunspell/en_US.dic": {Data: []byte("1\nhello\n")},
		"usr/share/hunspell/en_US.dic":         {Data: []byte("1\nworld\n")},
		"usr/share/hunspell/en_US.aff":         {Data: []byte("")},
		"usr/share/hunspell/de_DE.dic":         {Data: []byte("1\nhallo\n")},
		"usr/share/myspell/fr.dic":             {Data: []byte("1\nbonjour\n")},
	}

	dicts := FindDictionaries(fsys, []string{
		"/home/.local/share/hunspell",
		"/usr/share/hunspell",
		"/usr/share/myspell",
		"/does/not/exist",
	})

	assert.Equal(t, []Dictionary{
		{Language: Language{Code: "de_DE"}, Path: "/usr/share/hunspell/de_DE.dic"},
		{Language: Language{Code: "en_US"}, Path: "/home/.local/share/hunspell/en_US.dic"},
		{Language: Language{Code: "fr"}, Path: "/usr/share/myspell/fr.dic"},
	}, dicts)

	assert.Equal(t,
		[]Language{{Code: "de_DE"}, {Code: "en_US"}, {Code: "fr"}},
		Languages(dicts))
}

func TestEvents(t *testing.T) {
	var events Events
	var got []Event

	unsub := events.Subscribe(func(ev Event) { got = append(got, ev) })
	events.Emit(Event{Kind: WordAddedToSession, Word: "gspell"})
	unsub()
	events.Emit(Event{Kind: SessionCleared})

	assert.Equal(t, []Event{{Kind: WordAddedToSession, Word: "gspell"}}, got)
	assert.Equal(t, "word-added-to-session", WordAddedToSession.String())
}

func TestDictionaryError(t *testing.T) {
	cause := errors.New("broken pipe")
	var err error = &DictionaryError{Word: "eror", Err: cause}
	err = errors.Wrap(err, "batch")

	var dictErr *DictionaryError
	require.True(t, errors.As(err, &dictErr))
	assert.Equal(t, "eror", dictErr.Word)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), `"eror"`)
}

func TestFilterLanguages(t *testing.T) {
	langs := []Language{{Code: "de_DE"}, {Code: "en_US"}, {Code: "fr_FR"}}

	assert.Equal(t, langs, FilterLanguages(langs, "", 0))
	assert.Equal(t, langs[:2], FilterLanguages(langs, "", 2))
	assert.Equal(t, []Language{{Code: "fr_FR"}}, FilterLanguages(langs, "fr_FR", 0))
	assert.Equal(t, []Language{{Code: "de_DE"}}, FilterLanguages(langs, "Deutsch", 0))
	assert.Empty(t, FilterLanguages(langs, "zzz", 0))
}
