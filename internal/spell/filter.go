package spell

import "github.com/sahilm/fuzzy"

type languageSource []Language

func (s languageSource) String(i int) string { return s[i].String() }
func (s languageSource) Len() int            { return len(s) }

// FilterLanguages returns the languages matching query, best matches first.
// An empty query returns langs unchanged. At most limit languages are
// returned if limit is positive.
func FilterLanguages(langs []Language, query string, limit int) []Language {
	if query == "" {
		if limit > 0 && len(langs) > limit {
			return langs[:limit]
		}
		return langs
	}

	matches := fuzzy.FindFrom(query, languageSource(langs))
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	filtered := make([]Language, len(matches))
	for i, match := range matches {
		filtered[i] = langs[match.Index]
	}
	return filtered
}
