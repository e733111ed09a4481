package inline

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"libdb.so/inlinespell/internal/region"
	"libdb.so/inlinespell/internal/signaling"
	"libdb.so/inlinespell/internal/spell"
	"libdb.so/inlinespell/internal/words"
)

// DefaultBatchSize is the number of words checked per batch unless changed
// with WithBatchSize.
const DefaultBatchSize = 100

// Option configures a Checker.
type Option func(*Checker)

// WithBatchSize sets the maximum number of words checked by one Run.
func WithBatchSize(n int) Option {
	return func(c *Checker) {
		if n < 1 {
			panic(fmt.Sprintf("BUG: invalid batch size %d", n))
		}
		c.batchSize = n
	}
}

// WithErrorHandler sets the function called with the first provider error of
// a batch. By default the error is logged.
func WithErrorHandler(f func(error)) Option {
	return func(c *Checker) { c.onError = f }
}

// WithScheduler sets the scheduler used to run batches. The default is
// Immediate.
func WithScheduler(s Scheduler) Option {
	return func(c *Checker) { c.scheduler = s }
}

// Checker checks the spelling of one buffer incrementally. Only text that
// changed since it was last checked is checked again, and only once it is
// visible.
//
// A Checker must only be used from the goroutine running the main loop.
type Checker struct {
	buf       Buffer
	provider  spell.Checker
	scheduler Scheduler
	onError   func(error)
	batchSize int

	dirty   region.Set
	visible *region.Span
	// failed holds the words that failed to check since the last Run that
	// finished all visible work. They stay dirty but are skipped until then.
	failed region.Set

	scheduled bool
	cancel    func()
	detached  bool

	bufferSignals   signaling.DisconnectStack
	providerSignals signaling.DisconnectStack
}

// Attach starts checking buf with provider, which may be nil. The whole buffer
// starts out unchecked. If buf implements EditNotifier, edits are picked up
// automatically; otherwise the caller must call OnEdit after each edit.
func Attach(buf Buffer, provider spell.Checker, opts ...Option) *Checker {
	c := &Checker{
		buf:       buf,
		scheduler: Immediate,
		batchSize: DefaultBatchSize,
		onError: func(err error) {
			slog.Warn(
				"inline: cannot check spelling",
				"err", err)
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if notifier, ok := buf.(EditNotifier); ok {
		c.bufferSignals.Push(notifier.ConnectEdit(func(e region.Edit) {
			c.OnEdit(e.At, e.Removed, e.Inserted)
		}))
	}

	c.setProvider(provider)
	c.Invalidate()

	return c
}

// Detach stops checking the buffer. Pending batches are cancelled, the
// highlights are removed and the checker forgets its state. A detached
// checker cannot be attached again.
func (c *Checker) Detach() {
	if c.detached {
		return
	}

	c.unschedule()
	c.bufferSignals.Disconnect()
	c.providerSignals.Disconnect()

	c.buf.Unhighlight(0, c.buf.Len())
	c.dirty.Clear()
	c.failed.Clear()
	c.visible = nil
	c.detached = true
}

// Buffer returns the checked buffer.
func (c *Checker) Buffer() Buffer {
	return c.buf
}

// Provider returns the current spelling provider, which may be nil.
func (c *Checker) Provider() spell.Checker {
	return c.provider
}

// SetProvider replaces the spelling provider and checks the whole buffer
// again.
func (c *Checker) SetProvider(provider spell.Checker) {
	if c.detached || provider == c.provider {
		return
	}
	c.setProvider(provider)
	c.Invalidate()
}

func (c *Checker) setProvider(provider spell.Checker) {
	c.providerSignals.Disconnect()
	c.provider = provider

	if provider != nil {
		c.providerSignals.Push(provider.Subscribe(c.onProviderEvent))
	}
}

func (c *Checker) onProviderEvent(ev spell.Event) {
	switch ev.Kind {
	case spell.LanguageChanged, spell.SessionCleared:
		c.Invalidate()
	case spell.WordAddedToPersonal, spell.WordAddedToSession:
		c.recheckWord(ev.Word)
	}
}

// Invalidate marks the whole buffer as unchecked and removes every highlight.
func (c *Checker) Invalidate() {
	if c.detached {
		return
	}

	n := c.buf.Len()
	c.buf.Unhighlight(0, n)
	c.dirty.Clear()
	c.dirty.Add(0, n)
	c.failed.Clear()
	c.schedule()
}

// recheckWord marks the highlighted occurrences of word as unchecked.
func (c *Checker) recheckWord(word string) {
	if c.detached {
		return
	}

	word = words.Normalize(word)
	for _, span := range c.buf.Highlights() {
		for w := range words.Scan(c.buf, span.Start, span.End) {
			if strings.EqualFold(w.Normalized(), word) {
				c.dirty.Add(w.Start, w.End)
			}
		}
	}
	c.schedule()
}

// Dirty returns a copy of the spans waiting to be checked.
func (c *Checker) Dirty() *region.Set {
	return c.dirty.Clone()
}

// OnEdit updates the checker after removed characters at offset at were
// replaced by inserted characters. The buffer must already hold the new text.
func (c *Checker) OnEdit(at, removed, inserted int) {
	if at < 0 || removed < 0 || inserted < 0 || at+inserted > c.buf.Len() {
		panic(fmt.Sprintf(
			"BUG: edit at %d (-%d +%d) outside buffer of length %d",
			at, removed, inserted, c.buf.Len()))
	}
	if c.detached {
		return
	}

	c.dirty.ApplyEdit(at, removed, inserted)
	c.failed.ApplyEdit(at, removed, inserted)

	// An edit in the middle of a word invalidates the whole word, and a
	// deletion may join two words.
	start, end := words.Extend(c.buf, at, at+inserted)
	c.dirty.Add(start, end)
	c.failed.Subtract(start, end)
	c.buf.Unhighlight(start, end)

	c.schedule()
}

// OnVisibleRangeChanged sets the range of the buffer that is on screen. Only
// visible text is checked by Run. Until it is first called the whole buffer is
// considered visible.
func (c *Checker) OnVisibleRangeChanged(start, end int) {
	if start < 0 || end < start {
		panic(fmt.Sprintf("BUG: invalid visible range [%d, %d)", start, end))
	}
	if c.detached {
		return
	}

	c.visible = &region.Span{Start: start, End: end}
	c.schedule()
}

func (c *Checker) schedule() {
	if c.scheduled || c.detached {
		return
	}

	c.scheduled = true
	cancel := c.scheduler.Schedule(c.idle)
	// Immediate schedulers have already run the batch.
	if c.scheduled {
		c.cancel = cancel
	}
}

func (c *Checker) unschedule() {
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = nil
	c.scheduled = false
}

func (c *Checker) idle() {
	c.scheduled = false
	c.cancel = nil

	more, _ := c.Run()
	if more {
		c.schedule()
	}
}

// Run checks at most one batch of the visible unchecked text. It returns true
// if unchecked visible text remains because the batch was full. The first
// provider error of the batch is given to the error handler and returned.
// Words that failed stay unchecked and are skipped by the following batches
// until a Run finds nothing left to do. They are checked again by the Run
// after that.
func (c *Checker) Run() (more bool, err error) {
	if c.detached {
		return false, nil
	}

	work := c.dirty.Clone()
	if c.visible != nil {
		work = c.dirty.Intersect(c.visible.Start, min(c.visible.End, c.buf.Len()))
	}
	work.SubtractSet(&c.failed)
	if work.IsEmpty() {
		c.failed.Clear()
		return false, nil
	}

	b := batch{budget: c.batchSize}
	for span := range work.All() {
		// Growing the previous span to word boundaries may have covered it.
		if c.dirty.Intersect(span.Start, span.End).IsEmpty() {
			continue
		}
		if !c.checkSpan(span.Start, span.End, &b) {
			more = true
			break
		}
	}

	slog.Debug(
		"inline: batch finished",
		"checked", b.checked,
		"misspelled", b.misspelled,
		"dirty", c.dirty.Len())

	if more {
		c.failed.AddSet(&b.failed)
	} else {
		c.failed.Clear()
	}

	if b.err != nil {
		c.onError(b.err)
	}

	return more, b.err
}

// CheckNow checks [start, end) right away, whether or not it is visible or
// unchecked.
func (c *Checker) CheckNow(start, end int) error {
	if start < 0 || end < start || end > c.buf.Len() {
		panic(fmt.Sprintf("BUG: range [%d, %d) outside buffer of length %d", start, end, c.buf.Len()))
	}
	if c.detached {
		return nil
	}

	b := batch{budget: -1}
	c.checkSpan(start, end, &b)
	return b.err
}

type batch struct {
	budget     int // negative for no limit
	checked    int
	misspelled int
	failed     region.Set
	err        error
}

// checkSpan checks the words of [start, end) grown through the words it cuts.
// It returns false if it stopped early because the batch budget ran out; the
// rest of the span is left dirty from the end of the last checked word.
func (c *Checker) checkSpan(start, end int, b *batch) bool {
	start, end = words.Grow(c.buf, start, end)

	var excluded *region.Set
	if exclusions, ok := c.buf.(Exclusions); ok {
		excluded = region.New(exclusions.NoSpellCheck(start, end)...)
	}

	pos := start
	for w := range words.Scan(c.buf, start, end) {
		if b.budget == 0 {
			return false
		}
		if b.budget > 0 {
			b.budget--
		}

		c.markCorrect(pos, w.Start)
		pos = w.End

		if excluded != nil && !excluded.Intersect(w.Start, w.End).IsEmpty() {
			c.markCorrect(w.Start, w.End)
			continue
		}

		correct, err := c.check(w)
		if err != nil {
			if b.err == nil {
				b.err = err
			}
			b.failed.Add(w.Start, w.End)
			continue
		}

		b.checked++
		if correct {
			c.markCorrect(w.Start, w.End)
		} else {
			b.misspelled++
			c.buf.Highlight(w.Start, w.End)
			c.dirty.Subtract(w.Start, w.End)
		}
	}

	c.markCorrect(pos, end)
	return true
}

func (c *Checker) markCorrect(start, end int) {
	if start >= end {
		return
	}
	c.buf.Unhighlight(start, end)
	c.dirty.Subtract(start, end)
}

func (c *Checker) check(w words.Word) (bool, error) {
	if w.Number || c.provider == nil {
		return true, nil
	}

	correct, err := c.provider.CheckWord(w.Normalized())
	if err != nil {
		if errors.Is(err, spell.ErrDictionaryUnavailable) {
			return true, nil
		}
		return false, err
	}

	return correct, nil
}

// WordAt returns the misspelled word at offset. False is returned if offset
// is not inside a highlighted word.
func (c *Checker) WordAt(offset int) (words.Word, bool) {
	if _, ok := c.buf.HighlightAt(offset); !ok {
		return words.Word{}, false
	}
	return words.At(c.buf, offset)
}

// Suggestions returns the corrections the provider suggests for w.
func (c *Checker) Suggestions(w words.Word) []string {
	if c.provider == nil {
		return nil
	}
	return c.provider.Suggestions(w.Normalized())
}

// Correct replaces w with replacement and tells the provider about the
// correction. An error is returned if w is no longer in the buffer.
func (c *Checker) Correct(w words.Word, replacement string) error {
	if w.Start < 0 || w.End > c.buf.Len() || c.buf.Text(w.Start, w.End) != w.Text {
		return errors.Errorf("word %q is no longer at [%d, %d)", w.Text, w.Start, w.End)
	}

	c.buf.Replace(w.Start, w.End, replacement)
	if _, ok := c.buf.(EditNotifier); !ok {
		c.OnEdit(w.Start, w.Len(), utf8.RuneCountInString(replacement))
	}

	if c.provider != nil {
		c.provider.SetCorrection(w.Normalized(), replacement)
	}

	return nil
}

// AddToPersonal adds w to the personal dictionary of the provider. Every
// highlighted occurrence of w is checked again.
func (c *Checker) AddToPersonal(w words.Word) {
	if c.provider != nil {
		c.provider.AddToPersonal(w.Normalized())
	}
}

// IgnoreAll adds w to the session dictionary of the provider so that it is
// no longer reported until the session is cleared.
func (c *Checker) IgnoreAll(w words.Word) {
	if c.provider != nil {
		c.provider.AddToSession(w.Normalized())
	}
}
