// Package words splits text into candidate words for spell checking.
//
// A word is a maximal run of letters, marks and digits. Apostrophes (', U+2019
// and U+02BC) are part of a word when both neighbours are word characters.
// Digit group separators ('.', ',', U+00A0 and U+202F) are part of a word
// when both neighbours are digits. A word without any letter or mark is a
// number and is never spell checked.
package words

import (
	"iter"
	"strings"
	"unicode"
)

// Source gives random access to the characters of a text. Offsets are in
// characters (runes), not bytes.
type Source interface {
	// Len returns the number of characters.
	Len() int
	// Text returns the characters in [start, end). The returned string must
	// contain exactly end-start characters.
	Text(start, end int) string
}

// Word is a token and its character offsets in its source.
type Word struct {
	Text   string
	Start  int
	End    int
	Number bool
}

// Normalized returns the text of the word as it should be given to a spell
// checker.
func (w Word) Normalized() string {
	return Normalize(w.Text)
}

// Len returns the length of the word in characters.
func (w Word) Len() int {
	return w.End - w.Start
}

// isApostrophe returns true for the apostrophe variants that may appear
// inside a word.
func isApostrophe(r rune) bool {
	switch r {
	case '\'', '’', 'ʼ':
		return true
	}
	return false
}

func isDigitSeparator(r rune) bool {
	switch r {
	case '.', ',', '\u00a0', '\u202f':
		return true
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r)
}

// inWord reports whether cur is part of a word given the characters around
// it. Zero is used for missing neighbours.
func inWord(prev, cur, next rune) bool {
	switch {
	case isWordRune(cur):
		return true
	case isApostrophe(cur):
		return isWordRune(prev) && isWordRune(next)
	case isDigitSeparator(cur):
		return unicode.IsDigit(prev) && unicode.IsDigit(next)
	default:
		return false
	}
}

var apostropheReplacer = strings.NewReplacer("’", "'", "ʼ", "'")

// Normalize replaces typographic apostrophes with the ASCII apostrophe.
func Normalize(s string) string {
	if !strings.ContainsAny(s, "’ʼ") {
		return s
	}
	return apostropheReplacer.Replace(s)
}

// isNumber returns true if s is made of digits and digit separators only and
// contains at least one digit.
func isNumber(s string) bool {
	var digit bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case isDigitSeparator(r), isApostrophe(r):
		default:
			return false
		}
	}
	return digit
}

// Tokenize returns the words of text. Offsets are character offsets into
// text.
func Tokenize(text string) iter.Seq[Word] {
	src := stringSource([]rune(text))
	return Scan(src, 0, src.Len())
}

type stringSource []rune

func (s stringSource) Len() int                   { return len(s) }
func (s stringSource) Text(start, end int) string { return string(s[start:end]) }

// Scan returns the words inside [start, end) of src. Words are cut at the
// range boundaries, so callers wanting whole words should grow the range with
// Extend first. Each iteration reads src again from start.
func Scan(src Source, start, end int) iter.Seq[Word] {
	return func(yield func(Word) bool) {
		r := newReader(src)
		end = min(end, r.n)

		var text []rune
		for i := start; i < end; {
			// A separator can only start a word when the range begins in the
			// middle of one.
			if !r.inWord(i) || !isWordRune(r.at(i)) {
				i++
				continue
			}

			text = text[:0]
			number := true
			j := i
			for ; j < end && r.inWord(j); j++ {
				c := r.at(j)
				text = append(text, c)
				if isLetter(c) {
					number = false
				}
			}

			// Trailing separators can only be inside a word if followed by
			// a word character, which the range cut off.
			for len(text) > 0 && !isWordRune(text[len(text)-1]) {
				text = text[:len(text)-1]
			}

			w := Word{
				Text:   string(text),
				Start:  i,
				End:    i + len(text),
				Number: number,
			}
			if !yield(w) {
				return
			}

			i = j
		}
	}
}

// Extend grows [start, end) so that it does not cut through a word. A word
// touching the range, including one ending exactly at start or starting
// exactly at end, is included whole.
func Extend(src Source, start, end int) (int, int) {
	r := newReader(src)
	start = max(start, 0)
	end = min(end, r.n)

	for start > 0 && r.inWord(start-1) {
		start--
	}
	for end < r.n && r.inWord(end) {
		end++
	}

	return start, end
}

// Grow grows [start, end) through the words it cuts so that it starts and
// ends on word boundaries. Unlike Extend, a word that only touches the range
// is left out. An empty range is returned unchanged.
func Grow(src Source, start, end int) (int, int) {
	r := newReader(src)
	start = max(start, 0)
	end = min(end, r.n)
	if start >= end {
		return start, end
	}

	if r.inWord(start) {
		for start > 0 && r.inWord(start-1) {
			start--
		}
	}
	if r.inWord(end - 1) {
		for end < r.n && r.inWord(end) {
			end++
		}
	}

	return start, end
}

// At returns the word containing offset.
func At(src Source, offset int) (Word, bool) {
	r := newReader(src)
	if offset < 0 || offset >= r.n || !r.inWord(offset) {
		return Word{}, false
	}

	start, end := offset, offset+1
	for start > 0 && r.inWord(start-1) {
		start--
	}
	for end < r.n && r.inWord(end) {
		end++
	}

	for w := range Scan(src, start, end) {
		if w.Start <= offset && offset < w.End {
			return w, true
		}
	}
	return Word{}, false
}

const chunkSize = 256

// reader caches a window of characters of a Source so that neighbouring
// lookups do not each go to the source.
type reader struct {
	src  Source
	n    int
	base int
	buf  []rune
}

func newReader(src Source) *reader {
	return &reader{src: src, n: src.Len()}
}

// at returns the character at i, or zero outside the source.
func (r *reader) at(i int) rune {
	if i < 0 || i >= r.n {
		return 0
	}
	if i < r.base || i >= r.base+len(r.buf) {
		lo := max(i-chunkSize/2, 0)
		hi := min(lo+chunkSize, r.n)
		r.buf = []rune(r.src.Text(lo, hi))
		r.base = lo
	}
	return r.buf[i-r.base]
}

func (r *reader) inWord(i int) bool {
	return inWord(r.at(i-1), r.at(i), r.at(i+1))
}
