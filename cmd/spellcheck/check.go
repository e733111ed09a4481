package main

import (
	"fmt"
	"io"
	"strings"

	"libdb.so/inlinespell/internal/inline"
	"libdb.so/inlinespell/internal/spell"
	"libdb.so/inlinespell/internal/textbuf"
	"libdb.so/inlinespell/internal/words"
)

// misspelling is a misspelled word found in a file.
type misspelling struct {
	Word        words.Word
	Line, Col   int
	Suggestions []string
}

// checkText returns the misspelled words of text in order. At most suggest
// suggestions are kept per word. Only the prose of Markdown text is checked.
// The first provider error is returned along with the words that could be
// checked.
func checkText(text string, provider spell.Checker, suggest int, markdown bool) ([]misspelling, error) {
	buf := textbuf.New(text)
	if markdown {
		for _, span := range markdownExclusions([]byte(text)) {
			buf.ExcludeSpellCheck(span.Start, span.End)
		}
	}

	var queue inline.Queue
	checker := inline.Attach(buf, provider,
		inline.WithScheduler(&queue),
		inline.WithErrorHandler(func(error) {}),
	)
	defer checker.Detach()

	err := checker.CheckNow(0, buf.Len())

	spans := buf.Highlights()
	found := make([]misspelling, 0, len(spans))

	for _, span := range spans {
		w, ok := checker.WordAt(span.Start)
		if !ok {
			continue
		}

		m := misspelling{Word: w}
		m.Line, m.Col = buf.Position(w.Start)

		if suggest > 0 {
			suggestions := checker.Suggestions(w)
			m.Suggestions = suggestions[:min(len(suggestions), suggest)]
		}

		found = append(found, m)
	}

	return found, err
}

// writeMisspellings writes one "file:line:col: word" line per misspelling.
func writeMisspellings(w io.Writer, name string, found []misspelling) error {
	for _, m := range found {
		line := fmt.Sprintf("%s:%d:%d: %s", name, m.Line, m.Col, m.Word.Text)
		if len(m.Suggestions) > 0 {
			line += " [" + strings.Join(m.Suggestions, ", ") + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
