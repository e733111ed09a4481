//go:build nospellcheck

package window

import (
	"log/slog"

	"libdb.so/inlinespell/internal/spell"
	"libdb.so/inlinespell/internal/spell/wordlist"
)

// NewProvider returns the spelling provider of the application. Without
// libspelling, the system's hunspell word lists are used.
func NewProvider() spell.Checker {
	slog.Debug(
		"libspelling is disabled at build time, using word lists",
		"dirs", spell.DictionaryDirs())
	return wordlist.New()
}
