package inline

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"libdb.so/inlinespell/internal/region"
	"libdb.so/inlinespell/internal/spell"
	"libdb.so/inlinespell/internal/words"
)

// Navigator walks through the misspelled words of a whole buffer, one at a
// time, for a checker dialog. It does not use nor change any highlights.
type Navigator struct {
	buf      Buffer
	provider spell.Checker
	pos      int
}

// NewNavigator creates a navigator starting at the beginning of buf.
func NewNavigator(buf Buffer, provider spell.Checker) *Navigator {
	return &Navigator{buf: buf, provider: provider}
}

// Provider returns the spelling provider.
func (n *Navigator) Provider() spell.Checker {
	return n.provider
}

// Position returns the offset the next search starts from.
func (n *Navigator) Position() int {
	return n.pos
}

// Reset restarts the search from the beginning of the buffer.
func (n *Navigator) Reset() {
	n.pos = 0
}

// Next returns the next misspelled word after the previous one. False is
// returned once the end of the buffer is reached. A word that cannot be
// checked is skipped after its error is returned.
func (n *Navigator) Next() (words.Word, bool, error) {
	if n.provider == nil {
		return words.Word{}, false, nil
	}

	end := n.buf.Len()
	start := min(n.pos, end)

	var excluded *region.Set
	if exclusions, ok := n.buf.(Exclusions); ok {
		excluded = region.New(exclusions.NoSpellCheck(start, end)...)
	}

	for w := range words.Scan(n.buf, start, end) {
		n.pos = w.End

		if w.Number {
			continue
		}
		if excluded != nil && !excluded.Intersect(w.Start, w.End).IsEmpty() {
			continue
		}

		correct, err := n.provider.CheckWord(w.Normalized())
		if err != nil {
			if errors.Is(err, spell.ErrDictionaryUnavailable) {
				return words.Word{}, false, nil
			}
			return words.Word{}, false, err
		}
		if !correct {
			return w, true, nil
		}
	}

	n.pos = end
	return words.Word{}, false, nil
}

// Change replaces w with replacement. The search continues after the
// replacement.
func (n *Navigator) Change(w words.Word, replacement string) error {
	if err := n.verify(w); err != nil {
		return err
	}

	n.buf.Replace(w.Start, w.End, replacement)
	n.provider.SetCorrection(w.Normalized(), replacement)
	n.pos = w.Start + utf8.RuneCountInString(replacement)

	return nil
}

// ChangeAll replaces every occurrence of the word w in the buffer with
// replacement and returns how many were replaced. Only whole words with the
// same text are replaced.
func (n *Navigator) ChangeAll(w words.Word, replacement string) (int, error) {
	if err := n.verify(w); err != nil {
		return 0, err
	}

	target := w.Normalized()

	var matches []words.Word
	for other := range words.Scan(n.buf, 0, n.buf.Len()) {
		if other.Normalized() == target {
			matches = append(matches, other)
		}
	}

	// Replace from the end so that earlier offsets stay valid.
	delta := utf8.RuneCountInString(replacement)
	for _, match := range slices.Backward(matches) {
		n.buf.Replace(match.Start, match.End, replacement)
		if match.Start < n.pos {
			n.pos = max(n.pos+delta-match.Len(), match.Start+delta)
		}
	}

	n.provider.SetCorrection(target, replacement)
	return len(matches), nil
}

// CheckWord checks a word typed in by the user, which does not need to be in
// the buffer. Suggestions are only returned for misspelled words. Empty text
// and text without a provider is correct.
func (n *Navigator) CheckWord(text string) (correct bool, suggestions []string, err error) {
	text = words.Normalize(strings.TrimSpace(text))
	if text == "" || n.provider == nil {
		return true, nil, nil
	}

	correct, err = n.provider.CheckWord(text)
	if err != nil {
		if errors.Is(err, spell.ErrDictionaryUnavailable) {
			return true, nil, nil
		}
		return false, nil, err
	}
	if !correct {
		suggestions = n.provider.Suggestions(text)
	}

	return correct, suggestions, nil
}

func (n *Navigator) verify(w words.Word) error {
	if n.provider == nil {
		return errors.New("no spell checker")
	}
	if w.Start < 0 || w.End > n.buf.Len() || n.buf.Text(w.Start, w.End) != w.Text {
		return errors.Errorf("word %q is no longer at [%d, %d)", w.Text, w.Start, w.End)
	}
	return nil
}
