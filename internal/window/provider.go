//go:build !nospellcheck

package window

import (
	"libdb.so/inlinespell/internal/spell"
	"libdb.so/inlinespell/internal/spell/libspelling"
)

// NewProvider returns the spelling provider of the application.
func NewProvider() spell.Checker {
	return libspelling.New()
}
