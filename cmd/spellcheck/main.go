// Command spellcheck reports the misspelled words of text files using the
// system's hunspell word lists.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"libdb.so/inlinespell/internal/spell"
	"libdb.so/inlinespell/internal/spell/wordlist"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns 0 if no misspellings were found, 1 if some were and 2 on
// errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("spellcheck", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: spellcheck [flags] [files...]")
		fmt.Fprintln(stderr, "Reads standard input if no files are given.")
		flags.PrintDefaults()
	}

	var (
		lang     = flags.String("lang", "", "language code, such as en_US (default from the locale)")
		dict     = flags.String("dict", "", "hunspell .dic file to use, named after its language")
		personal = flags.String("personal", wordlist.DefaultPersonalDir(), "directory of personal dictionaries")
		suggest  = flags.Int("suggest", 3, "number of suggestions to print per word")
		markdown = flags.Bool("markdown", false, "check only the prose of Markdown input (default for .md files)")
		list     = flags.Bool("list", false, "list the available languages and exit")
		verbose  = flags.Bool("v", false, "log debug messages")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}

	noColor := true
	if f, ok := stderr.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	slog.SetDefault(slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})))

	checker, err := newChecker(*dict, *personal, *lang)
	if err != nil {
		slog.Error(
			"cannot load spell checker",
			"err", err)
		return 2
	}

	if *list {
		for _, l := range checker.Languages() {
			fmt.Fprintln(stdout, l.String())
		}
		return 0
	}

	files := flags.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	var total, failed int
	for _, name := range files {
		n, err := checkFile(name, stdin, stdout, checker, *suggest, *markdown || isMarkdown(name))
		total += n
		if err != nil {
			slog.Error(
				"cannot check file",
				"file", name,
				"err", err)
			failed++
		}
	}

	slog.Info(
		"spell check finished",
		"lang", checker.Language().Code,
		"files", humanize.Comma(int64(len(files))),
		"misspelled", humanize.Comma(int64(total)))

	switch {
	case failed > 0:
		return 2
	case total > 0:
		return 1
	default:
		return 0
	}
}

func newChecker(dict, personal, lang string) (*wordlist.Checker, error) {
	opts := []wordlist.Option{wordlist.WithPersonalDir(personal)}

	if dict != "" {
		code := strings.TrimSuffix(filepath.Base(dict), filepath.Ext(dict))
		l, err := spell.ParseLanguage(code)
		if err != nil {
			return nil, errors.Wrapf(err, "dictionary %s is not named after a language", dict)
		}
		if lang == "" {
			lang = l.Code
		}

		dicts := append([]spell.Dictionary{{Language: l, Path: dict}}, spell.SystemDictionaries()...)
		opts = append(opts, wordlist.WithDictionaries(dicts...))
	}

	checker := wordlist.New(opts...)

	if lang != "" {
		l, err := spell.ParseLanguage(lang)
		if err != nil {
			return nil, err
		}
		checker.SetLanguage(&l)
	}

	if checker.Language() == nil {
		if lang == "" {
			return nil, errors.Errorf("no dictionary found in %s", strings.Join(spell.DictionaryDirs(), ", "))
		}
		return nil, errors.Errorf("no dictionary for %s", lang)
	}

	return checker, nil
}

func checkFile(name string, stdin io.Reader, stdout io.Writer, checker spell.Checker, suggest int, markdown bool) (int, error) {
	var text []byte
	var err error

	if name == "-" {
		text, err = io.ReadAll(stdin)
		name = "<stdin>"
	} else {
		text, err = os.ReadFile(name)
	}
	if err != nil {
		return 0, err
	}

	found, err := checkText(string(text), checker, suggest, markdown)
	if err != nil {
		// The words that could be checked are still reported.
		slog.Warn(
			"some words could not be checked",
			"file", name,
			"err", err)
	}

	if err := writeMisspellings(stdout, name, found); err != nil {
		return len(found), errors.Wrap(err, "cannot write results")
	}

	return len(found), nil
}
