// Package inline implements inline spell checking of a text buffer: it keeps
// track of which parts of the buffer need checking, checks them in small
// batches and highlights misspelled words.
package inline

import (
	"libdb.so/inlinespell/internal/region"
	"libdb.so/inlinespell/internal/words"
)

// Buffer is the text buffer being checked. Offsets are character offsets.
type Buffer interface {
	words.Source

	// Highlight marks [start, end) as misspelled.
	Highlight(start, end int)
	// Unhighlight removes the misspelled mark from [start, end).
	Unhighlight(start, end int)
	// HighlightAt returns the highlighted span containing offset.
	HighlightAt(offset int) (region.Span, bool)
	// Highlights returns every highlighted span in order.
	Highlights() []region.Span
	// Replace replaces [start, end) with text.
	Replace(start, end int, text string)
}

// EditNotifier is implemented by buffers that report their own edits. The
// callback is called after the text has changed.
type EditNotifier interface {
	ConnectEdit(f func(region.Edit)) (disconnect func())
}

// Exclusions is implemented by buffers that contain text which must never be
// spell checked.
type Exclusions interface {
	// NoSpellCheck returns the excluded spans overlapping [start, end).
	NoSpellCheck(start, end int) []region.Span
}

// Scheduler runs callbacks later, typically from a low priority idle source
// of the main loop.
type Scheduler interface {
	// Schedule arranges for f to be called once. Calling the returned
	// function before then cancels it.
	Schedule(f func()) (cancel func())
}

// SchedulerFunc is a function implementing Scheduler.
type SchedulerFunc func(f func()) func()

// Schedule implements Scheduler.
func (s SchedulerFunc) Schedule(f func()) func() { return s(f) }

// Immediate runs scheduled callbacks right away.
var Immediate Scheduler = SchedulerFunc(func(f func()) func() {
	f()
	return func() {}
})

// Queue is a Scheduler that holds callbacks until they are run explicitly.
// The zero value is ready to use.
type Queue struct {
	pending []*func()
}

// Schedule implements Scheduler.
func (q *Queue) Schedule(f func()) func() {
	fp := &f
	q.pending = append(q.pending, fp)

	return func() {
		for i, p := range q.pending {
			if p == fp {
				q.pending = append(q.pending[:i:i], q.pending[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	return len(q.pending)
}

// RunOne runs the oldest pending callback. False is returned if there was
// none.
func (q *Queue) RunOne() bool {
	if len(q.pending) == 0 {
		return false
	}
	f := q.pending[0]
	q.pending = q.pending[1:]
	(*f)()
	return true
}

// Flush runs callbacks until none are pending, including those scheduled
// while flushing. It returns the number of callbacks run.
func (q *Queue) Flush() int {
	var n int
	for q.RunOne() {
		n++
	}
	return n
}
