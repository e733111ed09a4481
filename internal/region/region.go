// Package region implements a set of disjoint half-open intervals over a
// one-dimensional text coordinate space.
package region

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Span is the half-open interval [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span.
func (s Span) Len() int { return s.End - s.Start }

// IsEmpty returns true if the span covers nothing.
func (s Span) IsEmpty() bool { return s.Start >= s.End }

// Contains returns true if offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Set is a mutable set of offsets stored as sorted spans. Consecutive spans
// never overlap nor touch: spans[i].End < spans[i+1].Start.
//
// A zero-value Set is empty and ready to use. A Set is not safe for
// concurrent use.
type Set struct {
	spans []Span
}

// New creates a new set containing the given spans.
func New(spans ...Span) *Set {
	s := &Set{}
	for _, span := range spans {
		s.Add(span.Start, span.End)
	}
	return s
}

func assertOffsets(start, end int) {
	if start < 0 || end < 0 {
		panic(fmt.Sprintf("BUG: negative region offsets [%d, %d)", start, end))
	}
}

// search returns the index of the first span whose End is >= offset. Spans
// before it lie strictly before offset and do not touch it.
func (s *Set) search(offset int) int {
	return sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].End >= offset
	})
}

// Add adds [start, end) to the set, merging with every span it overlaps or
// touches. It is a no-op if start >= end.
func (s *Set) Add(start, end int) {
	assertOffsets(start, end)
	if start >= end {
		return
	}

	i := s.search(start)
	j := i
	for j < len(s.spans) && s.spans[j].Start <= end {
		start = min(start, s.spans[j].Start)
		end = max(end, s.spans[j].End)
		j++
	}

	s.spans = slices.Replace(s.spans, i, j, Span{start, end})
}

// AddSet adds every span of other to s.
func (s *Set) AddSet(other *Set) {
	if other == s {
		return
	}
	for _, span := range other.spans {
		s.Add(span.Start, span.End)
	}
}

// Subtract removes [start, end) from the set. Spans straddling the removed
// range are split.
func (s *Set) Subtract(start, end int) {
	assertOffsets(start, end)
	if start >= end {
		return
	}

	i := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].End > start
	})

	var keep []Span
	j := i
	for ; j < len(s.spans) && s.spans[j].Start < end; j++ {
		span := s.spans[j]
		if span.Start < start {
			keep = append(keep, Span{span.Start, start})
		}
		if span.End > end {
			keep = append(keep, Span{end, span.End})
		}
	}

	s.spans = slices.Replace(s.spans, i, j, keep...)
}

// SubtractSet removes every span of other from s.
func (s *Set) SubtractSet(other *Set) {
	if other == s {
		s.Clear()
		return
	}
	for _, span := range other.spans {
		s.Subtract(span.Start, span.End)
	}
}

// Intersect returns a new set containing the overlap of s with [start, end).
func (s *Set) Intersect(start, end int) *Set {
	assertOffsets(start, end)

	out := &Set{}
	if start >= end {
		return out
	}

	for i := s.search(start); i < len(s.spans); i++ {
		span := s.spans[i]
		if span.Start >= end {
			break
		}
		lo := max(span.Start, start)
		hi := min(span.End, end)
		if lo < hi {
			out.spans = append(out.spans, Span{lo, hi})
		}
	}

	return out
}

// IntersectSet returns a new set containing the offsets present in both s
// and other.
func (s *Set) IntersectSet(other *Set) *Set {
	out := &Set{}
	i, j := 0, 0
	for i < len(s.spans) && j < len(other.spans) {
		a, b := s.spans[i], other.spans[j]
		lo := max(a.Start, b.Start)
		hi := min(a.End, b.End)
		if lo < hi {
			out.spans = append(out.spans, Span{lo, hi})
		}
		if a.End < b.End {
			i++
		} else {
			j++
		}
	}
	return out
}

// IsEmpty returns true if the set contains no spans.
func (s *Set) IsEmpty() bool {
	return len(s.spans) == 0
}

// Len returns the number of spans in the set.
func (s *Set) Len() int {
	return len(s.spans)
}

// Bounds returns the smallest span covering the whole set. False is returned
// if the set is empty.
func (s *Set) Bounds() (Span, bool) {
	if len(s.spans) == 0 {
		return Span{}, false
	}
	return Span{s.spans[0].Start, s.spans[len(s.spans)-1].End}, true
}

// Contains returns the span containing offset, if any.
func (s *Set) Contains(offset int) (Span, bool) {
	i := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].End > offset
	})
	if i < len(s.spans) && s.spans[i].Contains(offset) {
		return s.spans[i], true
	}
	return Span{}, false
}

// Spans returns a copy of the spans in increasing order, or nil if the set is
// empty.
func (s *Set) Spans() []Span {
	if len(s.spans) == 0 {
		return nil
	}
	return slices.Clone(s.spans)
}

// All returns an iterator over a snapshot of the spans in increasing order.
// The set may be mutated while iterating; the iterator does not observe the
// mutation. Each call to the returned sequence starts over.
func (s *Set) All() iter.Seq[Span] {
	snapshot := slices.Clone(s.spans)
	return func(yield func(Span) bool) {
		for _, span := range snapshot {
			if !yield(span) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{spans: slices.Clone(s.spans)}
}

// Clear removes every span.
func (s *Set) Clear() {
	s.spans = nil
}

// Equal returns true if both sets contain the same offsets.
func (s *Set) Equal(other *Set) bool {
	return slices.Equal(s.spans, other.spans)
}

// ApplyEdit adjusts the set for an edit of the underlying text where removed
// characters starting at at were replaced by inserted characters.
//
// Every span boundary p is mapped as follows:
//
//	p < at                    unchanged
//	at <= p < at+removed      at+inserted
//	p >= at+removed           p-removed+inserted
//
// So an insertion shifts every boundary at or after at, which extends a span
// ending exactly at at, and a deletion clips the spans it overlaps. Spans
// that become empty are dropped and spans that come to touch are merged.
func (s *Set) ApplyEdit(at, removed, inserted int) {
	if at < 0 || removed < 0 || inserted < 0 {
		panic(fmt.Sprintf("BUG: invalid edit at %d (-%d +%d)", at, removed, inserted))
	}
	if removed == 0 && inserted == 0 {
		return
	}

	shift := func(p int) int {
		switch {
		case p < at:
			return p
		case p < at+removed:
			return at + inserted
		default:
			return p - removed + inserted
		}
	}

	spans := s.spans[:0]
	for _, span := range s.spans {
		span = Span{shift(span.Start), shift(span.End)}
		if span.IsEmpty() {
			continue
		}
		if n := len(spans); n > 0 && spans[n-1].End >= span.Start {
			spans[n-1].End = max(spans[n-1].End, span.End)
			continue
		}
		spans = append(spans, span)
	}

	clear(s.spans[len(spans):])
	s.spans = spans
}

// Edit describes a change of the underlying text: Removed characters starting
// at At were replaced by Inserted characters.
type Edit struct {
	At       int
	Removed  int
	Inserted int
}

// Apply is ApplyEdit for an Edit.
func (e Edit) Apply(s *Set) {
	s.ApplyEdit(e.At, e.Removed, e.Inserted)
}

// InsertedSpan returns the span of the new text after the edit.
func (e Edit) InsertedSpan() Span {
	return Span{e.At, e.At + e.Inserted}
}

// String formats the set for debugging, e.g. "[0, 3) [5, 9)".
func (s *Set) String() string {
	if len(s.spans) == 0 {
		return "(empty)"
	}

	var b strings.Builder
	for i, span := range s.spans {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(span.String())
	}
	return b.String()
}
