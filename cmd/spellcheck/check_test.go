package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"libdb.so/inlinespell/internal/spell/spelltest"
)

func TestCheckText(t *testing.T) {
	provider := spelltest.New("I", "a", "see", "apples")
	provider.Suggest = map[string][]string{
		"eror": {"error", "Eros", "euro"},
	}

	found, err := checkText("I has a eror\nsee 42 apples\nwrold", provider, 2, false)
	require.NoError(t, err)
	require.Len(t, found, 3)

	type position struct {
		word      string
		line, col int
	}
	var got []position
	for _, m := range found {
		got = append(got, position{m.Word.Text, m.Line, m.Col})
	}
	assert.Equal(t, []position{
		{"has", 1, 3},
		{"eror", 1, 9},
		{"wrold", 3, 1},
	}, got)

	assert.Empty(t, found[0].Suggestions)
	assert.Equal(t, []string{"error", "Eros"}, found[1].Suggestions)
	assert.NotContains(t, provider.Checked, "42")
}

func TestCheckTextError(t *testing.T) {
	provider := spelltest.New("I", "a")
	provider.Errors = map[string]error{"has": errors.New("broken")}

	found, err := checkText("I has a eror", provider, 0, false)
	require.Error(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "eror", found[0].Word.Text)
}

func TestCheckMarkdown(t *testing.T) {
	const text = "Some `codee` and wrold.\n" +
		"\n" +
		"```go\n" +
		"func mian() {}\n" +
		"```\n" +
		"\n" +
		"Sée <https://exmaple.org> or https://exmaple.org/wiki now.\n"

	provider := spelltest.New("Some", "and", "Sée", "or", "now")

	found, err := checkText(text, provider, 0, true)
	require.NoError(t, err)

	var got []string
	for _, m := range found {
		got = append(got, m.Word.Text)
	}
	assert.Equal(t, []string{"wrold"}, got)
	assert.Equal(t, []string{"Some", "and", "wrold", "Sée", "or", "now"}, provider.Checked)

	found, err = checkText(text, spelltest.New(), 0, false)
	require.NoError(t, err)
	assert.Greater(t, len(found), 6, "plain text checks code and links too")
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, isMarkdown("README.md"))
	assert.True(t, isMarkdown("notes.Markdown"))
	assert.False(t, isMarkdown("notes.txt"))
	assert.False(t, isMarkdown("-"))
}

func TestWriteMisspellings(t *testing.T) {
	provider := spelltest.New("I", "a")
	provider.Suggest = map[string][]string{"eror": {"error"}}

	found, err := checkText("I has a eror", provider, 3, false)
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, writeMisspellings(&out, "notes.txt", found))
	assert.Equal(t, "notes.txt:1:3: has\nnotes.txt:1:9: eror [error]\n", out.String())
}

func writeDictionary(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "en_US.dic")
	require.NoError(t, os.WriteFile(path, []byte("3\nhello\nworld\nspell\n"), 0o644))
	return path
}

func TestRun(t *testing.T) {
	dict := writeDictionary(t)
	personal := t.TempDir()

	t.Run("misspelled", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		stdin := strings.NewReader("hello wrold\n")

		code := run([]string{"-dict", dict, "-personal", personal, "-suggest", "0"}, stdin, &stdout, &stderr)
		assert.Equal(t, 1, code, stderr.String())
		assert.Equal(t, "<stdin>:1:7: wrold\n", stdout.String())
	})

	t.Run("correct", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		file := filepath.Join(t.TempDir(), "ok.txt")
		require.NoError(t, os.WriteFile(file, []byte("Hello, world!\n"), 0o644))

		code := run([]string{"-dict", dict, "-personal", personal, file}, nil, &stdout, &stderr)
		assert.Equal(t, 0, code, stderr.String())
		assert.Empty(t, stdout.String())
	})

	t.Run("missing file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"-dict", dict, "-personal", personal, filepath.Join(t.TempDir(), "nope")}, nil, &stdout, &stderr)
		assert.Equal(t, 2, code)
	})

	t.Run("markdown file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		file := filepath.Join(t.TempDir(), "notes.md")
		require.NoError(t, os.WriteFile(file, []byte("hello `wrold`\n"), 0o644))

		code := run([]string{"-dict", dict, "-personal", personal, file}, nil, &stdout, &stderr)
		assert.Equal(t, 0, code, stderr.String())
		assert.Empty(t, stdout.String())
	})

	t.Run("list", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"-dict", dict, "-personal", personal, "-list"}, nil, &stdout, &stderr)
		assert.Equal(t, 0, code, stderr.String())
		assert.Contains(t, stdout.String(), "(en_US)")
	})

	t.Run("bad dictionary name", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"-dict", filepath.Join(t.TempDir(), "my words.dic")}, nil, &stdout, &stderr)
		assert.Equal(t, 2, code)
	})
}
