// Package gtkspell attaches inline spell checking to GTK text views.
package gtkspell

import (
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotkit/app/prefs"
	"libdb.so/inlinespell/internal/inline"
)

// HighlightMisspelled toggles inline checking of every View.
var HighlightMisspelled = prefs.NewBool(true, prefs.PropMeta{
	Name:        "Highlight Misspelled Words",
	Section:     "Spelling",
	Description: "Underline misspelled words while typing.",
})

var languageMenu = prefs.NewBool(true, prefs.PropMeta{
	Name:        "Language Menu",
	Section:     "Spelling",
	Description: "Show a menu to change the spelling language in the context menu.",
})

var keepExistingMenu = prefs.NewBool(true, prefs.PropMeta{
	Name:    "Keep Existing Menu",
	Section: "Spelling",
	Description: "Add the spelling items to the context menu items the text view already has. " +
		"If disabled, the spelling items replace them.",
})

var wordsPerIdle = prefs.NewInt(inline.DefaultBatchSize, prefs.IntMeta{
	Name:        "Words Per Idle Check",
	Section:     "Spelling",
	Description: "The number of words checked at once while the application is idle.",
	Min:         10,
	Max:         5000,
})

// IdleScheduler runs the checker batches from the main loop when it is idle.
type IdleScheduler struct {
	Priority glib.Priority
}

// DefaultIdleScheduler runs batches with the default idle priority.
var DefaultIdleScheduler = IdleScheduler{Priority: glib.PriorityDefaultIdle}

var _ inline.Scheduler = IdleScheduler{}

// Schedule implements inline.Scheduler.
func (s IdleScheduler) Schedule(f func()) func() {
	var done bool
	handle := glib.IdleAddPriority(s.Priority, func() {
		done = true
		f()
	})

	return func() {
		if !done {
			done = true
			glib.SourceRemove(handle)
		}
	}
}
