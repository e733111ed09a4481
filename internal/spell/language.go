package spell

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a dictionary language identified by its dictionary code, such
// as "en_US" or "de".
type Language struct {
	Code string
}

// ParseLanguage validates code and returns its Language. Both "en_US" and
// "en-US" are accepted; the returned code uses underscores. Locale suffixes
// such as ".UTF-8" or "@euro" are dropped.
func ParseLanguage(code string) (Language, error) {
	code = trimLocale(code)
	if code == "" || code == "C" || code == "POSIX" {
		return Language{}, errors.Errorf("invalid language code %q", code)
	}

	if _, err := language.Parse(strings.ReplaceAll(code, "_", "-")); err != nil {
		return Language{}, errors.Wrapf(err, "invalid language code %q", code)
	}

	return Language{Code: strings.ReplaceAll(code, "-", "_")}, nil
}

func trimLocale(code string) string {
	if i := strings.IndexAny(code, ".@"); i >= 0 {
		code = code[:i]
	}
	return strings.TrimSpace(code)
}

// Tag returns the BCP 47 tag of the language, or language.Und if the code
// cannot be parsed.
func (l Language) Tag() language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(l.Code, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// Name returns the name of the language in the language itself, falling back
// to English and then to the code.
func (l Language) Name() string {
	tag := l.Tag()
	if tag == language.Und {
		return l.Code
	}

	if name := display.Self.Name(tag); name != "" {
		return name
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return l.Code
}

// String returns "Name (code)".
func (l Language) String() string {
	return l.Name() + " (" + l.Code + ")"
}

// Equal compares two possibly nil languages.
func (l *Language) Equal(other *Language) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.Code == other.Code
}

// DefaultLanguage returns the language of the user's locale, looked up in
// LC_ALL, LC_MESSAGES and LANG. False is returned if none is set.
func DefaultLanguage() (Language, bool) {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		lang, err := ParseLanguage(v)
		if err != nil {
			continue
		}
		return lang, true
	}
	return Language{}, false
}

// Best returns the language of langs closest to want: an exact code match,
// then a match on the base language. False is returned if nothing matches.
func Best(want Language, langs []Language) (Language, bool) {
	for _, lang := range langs {
		if lang.Code == want.Code {
			return lang, true
		}
	}

	base, _ := want.Tag().Base()
	for _, lang := range langs {
		if b, _ := lang.Tag().Base(); b == base {
			return lang, true
		}
	}

	return Language{}, false
}
