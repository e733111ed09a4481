// Package wordlist implements a spell.Checker over hunspell word lists. Only
// the .dic word list is read; affix rules are ignored, so inflected forms are
// only known if the list spells them out.
package wordlist

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/f1monkey/spellchecker"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"libdb.so/inlinespell/internal/spell"
)

// MaxSuggestions is the maximum number of suggestions returned.
const MaxSuggestions = 8

// Checker is a spell.Checker backed by hunspell word lists. It is safe for
// concurrent use.
type Checker struct {
	spell.Events

	dicts       []spell.Dictionary
	personalDir string
	maxErrors   int

	mu          sync.Mutex
	lang        *spell.Language
	dict        *dictionary
	personal    map[string]bool
	session     map[string]bool
	corrections map[string]string
}

var (
	_ spell.Checker = (*Checker)(nil)
	_ spell.Lister  = (*Checker)(nil)
)

// Option configures a Checker.
type Option func(*Checker)

// WithDictionaries replaces the system dictionaries with dicts.
func WithDictionaries(dicts ...spell.Dictionary) Option {
	return func(c *Checker) { c.dicts = dicts }
}

// WithPersonalDir sets the directory holding the personal dictionaries, one
// "<code>.dic" file per language. An empty dir disables saving personal
// words.
func WithPersonalDir(dir string) Option {
	return func(c *Checker) { c.personalDir = dir }
}

// WithMaxErrors sets how many edits away suggestions may be.
func WithMaxErrors(n int) Option {
	return func(c *Checker) { c.maxErrors = n }
}

// DefaultPersonalDir returns the default directory of personal dictionaries.
func DefaultPersonalDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "inlinespell")
}

// New creates a checker using the default language.
func New(opts ...Option) *Checker {
	c := &Checker{
		personalDir: DefaultPersonalDir(),
		maxErrors:   2,
	}

	c.dicts = spell.SystemDictionaries()
	for _, opt := range opts {
		opt(c)
	}

	c.setLanguage(nil)
	return c
}

// Languages implements spell.Lister.
func (c *Checker) Languages() []spell.Language {
	return spell.Languages(c.dicts)
}

// Language implements spell.Checker.
func (c *Checker) Language() *spell.Language {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lang
}

// SetLanguage implements spell.Checker. Selecting a language without a
// dictionary leaves the checker without a language.
func (c *Checker) SetLanguage(lang *spell.Language) {
	if !c.setLanguage(lang) {
		return
	}
	c.Emit(spell.Event{Kind: spell.LanguageChanged, Language: c.Language()})
}

func (c *Checker) setLanguage(lang *spell.Language) (changed bool) {
	if lang == nil {
		lang = c.defaultLanguage()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if lang.Equal(c.lang) && c.dict != nil {
		return false
	}

	old := c.lang
	c.lang = nil
	c.dict = nil
	c.personal = nil

	if lang != nil {
		if err := c.load(*lang); err != nil {
			slog.Warn(
				"wordlist: cannot load dictionary",
				"lang", lang.Code,
				"err", err)
		}
	}

	return !old.Equal(c.lang)
}

func (c *Checker) defaultLanguage() *spell.Language {
	langs := c.Languages()
	if len(langs) == 0 {
		return nil
	}

	if def, ok := spell.DefaultLanguage(); ok {
		if lang, ok := spell.Best(def, langs); ok {
			return &lang
		}
	}

	if lang, ok := spell.Best(spell.Language{Code: "en_US"}, langs); ok {
		return &lang
	}

	return &langs[0]
}

func (c *Checker) load(lang spell.Language) error {
	i := slices.IndexFunc(c.dicts, func(d spell.Dictionary) bool {
		return d.Language.Code == lang.Code
	})
	if i == -1 {
		return errors.Wrapf(spell.ErrDictionaryUnavailable, "language %s", lang.Code)
	}

	caser := cases.Lower(lang.Tag())

	f, err := os.Open(c.dicts[i].Path)
	if err != nil {
		return errors.Wrap(err, "cannot open dictionary")
	}
	defer f.Close()

	words, err := ReadWords(f)
	if err != nil {
		return errors.Wrapf(err, "cannot read dictionary %s", c.dicts[i].Path)
	}

	personal, err := c.readPersonal(lang)
	if err != nil {
		slog.Warn(
			"wordlist: cannot read personal dictionary",
			"lang", lang.Code,
			"err", err)
	}

	dict, err := newDictionary(lang, caser, append(words, personal...), c.maxErrors)
	if err != nil {
		return err
	}

	c.lang = &lang
	c.dict = dict
	c.personal = make(map[string]bool, len(personal))
	for _, word := range personal {
		c.personal[dict.fold(word)] = true
	}

	slog.Debug(
		"wordlist: loaded dictionary",
		"lang", lang.Code,
		"words", len(words),
		"personal", len(personal))

	return nil
}

func (c *Checker) personalPath(lang spell.Language) string {
	if c.personalDir == "" {
		return ""
	}
	return filepath.Join(c.personalDir, lang.Code+".dic")
}

func (c *Checker) readPersonal(lang spell.Language) ([]string, error) {
	path := c.personalPath(lang)
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	return ReadWords(f)
}

// CheckWord implements spell.Checker.
func (c *Checker) CheckWord(word string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lang == nil || word == "" {
		return true, nil
	}
	if c.dict == nil {
		return false, spell.ErrDictionaryUnavailable
	}

	folded := c.dict.fold(word)
	if c.session[folded] || c.personal[folded] {
		return true, nil
	}

	return c.dict.contains(folded), nil
}

// Suggestions implements spell.Checker. A correction recorded with
// SetCorrection comes first. Suggestions for a capitalized word are
// capitalized.
func (c *Checker) Suggestions(word string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []string
	if correction, ok := c.corrections[word]; ok {
		out = append(out, correction)
	}

	if c.dict == nil {
		return out
	}

	for _, s := range c.dict.suggest(word, MaxSuggestions) {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}

	return out
}

// AddToPersonal implements spell.Checker. The word is appended to the
// personal dictionary file of the current language.
func (c *Checker) AddToPersonal(word string) {
	c.mu.Lock()

	if c.dict == nil {
		c.mu.Unlock()
		return
	}

	c.personal[c.dict.fold(word)] = true
	c.dict.add(word)

	if path := c.personalPath(*c.lang); path != "" {
		if err := appendWord(path, word); err != nil {
			slog.Error(
				"wordlist: cannot save personal word",
				"path", path,
				"err", err)
		}
	}

	c.mu.Unlock()
	c.Emit(spell.Event{Kind: spell.WordAddedToPersonal, Word: word})
}

func appendWord(path, word string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "cannot create personal dictionary directory")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "cannot open personal dictionary")
	}

	if _, err := io.WriteString(f, word+"\n"); err != nil {
		f.Close()
		return errors.Wrap(err, "cannot write personal dictionary")
	}

	return f.Close()
}

// AddToSession implements spell.Checker.
func (c *Checker) AddToSession(word string) {
	c.mu.Lock()

	if c.dict == nil {
		c.mu.Unlock()
		return
	}

	if c.session == nil {
		c.session = make(map[string]bool)
	}
	c.session[c.dict.fold(word)] = true

	c.mu.Unlock()
	c.Emit(spell.Event{Kind: spell.WordAddedToSession, Word: word})
}

// ClearSession implements spell.Checker.
func (c *Checker) ClearSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	c.Emit(spell.Event{Kind: spell.SessionCleared})
}

// SetCorrection implements spell.Checker.
func (c *Checker) SetCorrection(word, replacement string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.corrections == nil {
		c.corrections = make(map[string]string)
	}
	c.corrections[word] = replacement
}

// ReadWords reads a hunspell .dic word list: an optional first line holding
// the word count, then one word per line followed by optional "/FLAGS" and
// tab separated fields.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			if isCount(line) {
				continue
			}
		}

		if i := strings.IndexAny(line, "/\t"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		words = append(words, line)
	}

	return words, scanner.Err()
}

func isCount(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// dictionary is the word model of one language.
type dictionary struct {
	model    *spellchecker.Spellchecker
	alphabet map[rune]bool
	lower    cases.Caser
	title    cases.Caser
}

func newDictionary(lang spell.Language, lower cases.Caser, words []string, maxErrors int) (*dictionary, error) {
	d := &dictionary{
		alphabet: make(map[rune]bool),
		lower:    lower,
		title:    cases.Title(lang.Tag(), cases.NoLower),
	}

	folded := make([]string, len(words))
	for i, word := range words {
		folded[i] = d.fold(word)
		for _, r := range folded[i] {
			d.alphabet[r] = true
		}
	}
	d.alphabet['\''] = true

	runes := make([]rune, 0, len(d.alphabet))
	for r := range d.alphabet {
		runes = append(runes, r)
	}
	slices.Sort(runes)

	model, err := spellchecker.New(string(runes), spellchecker.WithMaxErrors(maxErrors))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create spelling model")
	}
	model.Add(folded...)

	d.model = model
	return d, nil
}

func (d *dictionary) fold(word string) string {
	return d.lower.String(word)
}

// known reports whether every character of folded is in the alphabet. The
// model cannot know any other word.
func (d *dictionary) known(folded string) bool {
	for _, r := range folded {
		if !d.alphabet[r] {
			return false
		}
	}
	return true
}

func (d *dictionary) contains(folded string) bool {
	return d.known(folded) && d.model.IsCorrect(folded)
}

func (d *dictionary) add(word string) {
	folded := d.fold(word)
	if d.known(folded) {
		d.model.Add(folded)
	}
}

func (d *dictionary) suggest(word string, n int) []string {
	folded := d.fold(word)
	if !d.known(folded) {
		return nil
	}

	suggestions, err := d.model.Suggest(folded, n)
	if err != nil {
		slog.Debug(
			"wordlist: no suggestions",
			"word", word,
			"err", err)
		return nil
	}

	if r, _ := utf8.DecodeRuneInString(word); unicode.IsUpper(r) {
		for i, s := range suggestions {
			suggestions[i] = d.title.String(s)
		}
	}

	return suggestions
}
