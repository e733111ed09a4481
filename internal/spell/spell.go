// Package spell defines the spelling provider consumed by the inline checker,
// along with languages, dictionary discovery and the provider errors.
package spell

import (
	"fmt"

	"github.com/pkg/errors"
	"libdb.so/inlinespell/internal/signaling"
)

// Checker is a spelling provider bound to one language at a time. Methods
// taking a word expect a single word with ASCII apostrophes.
//
// A Checker is owned by one event loop; implementations need not be safe for
// concurrent use unless documented otherwise.
type Checker interface {
	// CheckWord returns true if word is correctly spelled. If no language is
	// set, every word is correctly spelled. An error means the word could not
	// be checked at all; the returned boolean is then meaningless.
	CheckWord(word string) (bool, error)
	// Suggestions returns corrections for word, best first.
	Suggestions(word string) []string
	// AddToPersonal adds word to the personal dictionary, which outlives the
	// process.
	AddToPersonal(word string)
	// AddToSession adds word to the session dictionary, which is forgotten
	// when the session is cleared.
	AddToSession(word string)
	// SetCorrection records that word was replaced by replacement so that the
	// replacement is suggested first next time.
	SetCorrection(word, replacement string)
	// ClearSession empties the session dictionary.
	ClearSession()
	// SetLanguage switches the dictionary. Nil selects the default language.
	SetLanguage(lang *Language)
	// Language returns the current language, or nil if none is usable.
	Language() *Language
	// Subscribe calls f for every event of the checker. The returned function
	// unsubscribes.
	Subscribe(f func(Event)) (unsubscribe func())
}

// Lister is implemented by checkers that know which languages they support.
type Lister interface {
	Languages() []Language
}

// EventKind is the kind of a checker Event.
type EventKind uint8

const (
	_ EventKind = iota
	WordAddedToPersonal
	WordAddedToSession
	SessionCleared
	LanguageChanged
)

func (k EventKind) String() string {
	switch k {
	case WordAddedToPersonal:
		return "word-added-to-personal"
	case WordAddedToSession:
		return "word-added-to-session"
	case SessionCleared:
		return "session-cleared"
	case LanguageChanged:
		return "language-changed"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is emitted by a Checker.
type Event struct {
	Kind EventKind
	// Word is set for WordAddedToPersonal and WordAddedToSession.
	Word string
	// Language is set for LanguageChanged. It may be nil.
	Language *Language
}

// Events implements the Subscribe half of Checker. Embed it in a Checker
// implementation and call Emit.
type Events struct {
	signaler signaling.Signaler[Event]
}

// Subscribe implements Checker.
func (e *Events) Subscribe(f func(Event)) func() {
	return e.signaler.Connect(f)
}

// Emit delivers ev to every subscriber.
func (e *Events) Emit(ev Event) {
	e.signaler.Signal(ev)
}

// ErrDictionaryUnavailable is returned when no dictionary can be loaded for a
// language. Checkers in that state treat every word as correctly spelled.
var ErrDictionaryUnavailable = errors.New("no dictionary available")

// DictionaryError is a failure of the dictionary while checking one word. The
// word should be checked again later.
type DictionaryError struct {
	Word string
	Err  error
}

// Error implements error.
func (e *DictionaryError) Error() string {
	return fmt.Sprintf("error when checking the spelling of word %q: %v", e.Word, e.Err)
}

// Unwrap returns the underlying error.
func (e *DictionaryError) Unwrap() error { return e.Err }

// Cause returns the underlying error for errors.Cause.
func (e *DictionaryError) Cause() error { return e.Err }
