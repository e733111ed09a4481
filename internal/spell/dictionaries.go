package spell

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Dictionary is a hunspell word list found on disk.
type Dictionary struct {
	Language Language
	Path     string
}

// DictionaryDirs returns the directories searched for hunspell dictionaries,
// most specific first.
func DictionaryDirs() []string {
	var dirs []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "hunspell"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range filepath.SplitList(dataDirs) {
		dirs = append(dirs,
			filepath.Join(dir, "hunspell"),
			filepath.Join(dir, "myspell"),
			filepath.Join(dir, "myspell", "dicts"),
		)
	}

	return dirs
}

// SystemDictionaries returns the dictionaries found in DictionaryDirs. A
// language found in several directories is reported once, from the first.
func SystemDictionaries() []Dictionary {
	return FindDictionaries(os.DirFS("/"), DictionaryDirs())
}

// FindDictionaries looks for "<code>.dic" files in dirs of fsys. Dirs are
// absolute paths; a leading slash is stripped for fsys. Missing directories
// are skipped. The result is sorted by language code.
func FindDictionaries(fsys fs.FS, dirs []string) []Dictionary {
	seen := make(map[string]bool)
	var dicts []Dictionary

	for _, dir := range dirs {
		entries, err := fs.ReadDir(fsys, strings.TrimPrefix(filepath.ToSlash(dir), "/"))
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".dic") {
				continue
			}

			lang, err := ParseLanguage(strings.TrimSuffix(name, ".dic"))
			if err != nil || seen[lang.Code] {
				continue
			}
			seen[lang.Code] = true

			dicts = append(dicts, Dictionary{
				Language: lang,
				Path:     filepath.Join(dir, name),
			})
		}
	}

	slices.SortFunc(dicts, func(a, b Dictionary) int {
		return strings.Compare(a.Language.Code, b.Language.Code)
	})

	return dicts
}

// Languages returns the languages of dicts.
func Languages(dicts []Dictionary) []Language {
	langs := make([]Language, len(dicts))
	for i, dict := range dicts {
		langs[i] = dict.Language
	}
	return langs
}
