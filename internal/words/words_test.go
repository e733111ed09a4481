package words

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(text string) []Word {
	return slices.Collect(Tokenize(text))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []Word
	}{
		{"", nil},
		{"  ...  ", nil},
		{"I has a eror", []Word{
			{Text: "I", Start: 0, End: 1},
			{Text: "has", Start: 2, End: 5},
			{Text: "a", Start: 6, End: 7},
			{Text: "eror", Start: 8, End: 12},
		}},
		{"\"quoted,\" she said.", []Word{
			{Text: "quoted", Start: 1, End: 7},
			{Text: "she", Start: 10, End: 13},
			{Text: "said", Start: 14, End: 18},
		}},
		{"don't 'quote' dogs'", []Word{
			{Text: "don't", Start: 0, End: 5},
			{Text: "quote", Start: 7, End: 12},
			{Text: "dogs", Start: 14, End: 18},
		}},
		{"l’homme aujourdʼhui", []Word{
			{Text: "l’homme", Start: 0, End: 7},
			{Text: "aujourdʼhui", Start: 8, End: 19},
		}},
		{"well-known", []Word{
			{Text: "well", Start: 0, End: 4},
			{Text: "known", Start: 5, End: 10},
		}},
		{"naïve café", []Word{
			{Text: "naïve", Start: 0, End: 5},
			{Text: "café", Start: 6, End: 10},
		}},
		{"über straße", []Word{
			{Text: "über", Start: 0, End: 4},
			{Text: "straße", Start: 5, End: 11},
		}},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			assert.Equal(t, test.want, collect(test.text))
		})
	}
}

// TestNumberGrammar documents which tokens count as numbers.
func TestNumberGrammar(t *testing.T) {
	tests := []struct {
		text   string
		want   []string
		number []bool
	}{
		{"42", []string{"42"}, []bool{true}},
		{"1,000.50", []string{"1,000.50"}, []bool{true}},
		{"1'000", []string{"1'000"}, []bool{true}},
		{"1\u00a0000", []string{"1\u00a0000"}, []bool{true}},
		{"3.", []string{"3"}, []bool{true}},
		{"-42", []string{"42"}, []bool{true}},
		{"v1.2", []string{"v1.2"}, []bool{false}},
		{"mp3", []string{"mp3"}, []bool{false}},
		{"a.b", []string{"a", "b"}, []bool{false, false}},
		{"42nd", []string{"42nd"}, []bool{false}},
		{"١٢٣", []string{"١٢٣"}, []bool{true}},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			var texts []string
			var numbers []bool
			for w := range Tokenize(test.text) {
				texts = append(texts, w.Text)
				numbers = append(numbers, w.Number)
				assert.Equal(t, w.Number, isNumber(w.Text), "isNumber(%q)", w.Text)
			}
			assert.Equal(t, test.want, texts)
			assert.Equal(t, test.number, numbers)
		})
	}
}

func TestIsNumber(t *testing.T) {
	assert.True(t, isNumber("0"))
	assert.True(t, isNumber("12.5"))
	assert.False(t, isNumber(""))
	assert.False(t, isNumber(".,"))
	assert.False(t, isNumber("12a"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "don't", Normalize("don’t"))
	assert.Equal(t, "don't", Normalize("donʼt"))
	assert.Equal(t, "plain", Normalize("plain"))

	w := Word{Text: "it’s"}
	assert.Equal(t, "it's", w.Normalized())
}

func TestScanCutsAtRange(t *testing.T) {
	src := stringSource([]rune("hello world"))

	got := slices.Collect(Scan(src, 2, 8))
	assert.Equal(t, []Word{
		{Text: "llo", Start: 2, End: 5},
		{Text: "wo", Start: 6, End: 8},
	}, got)

	// Starting on an inner apostrophe skips it.
	src = stringSource([]rune("don't"))
	got = slices.Collect(Scan(src, 3, 5))
	assert.Equal(t, []Word{{Text: "t", Start: 4, End: 5}}, got)

	// Ending right after an inner apostrophe drops it.
	got = slices.Collect(Scan(src, 0, 4))
	assert.Equal(t, []Word{{Text: "don", Start: 0, End: 3}}, got)
}

func TestScanRestartable(t *testing.T) {
	seq := Tokenize("one two three")

	for w := range seq {
		assert.Equal(t, "one", w.Text)
		break
	}

	assert.Len(t, slices.Collect(seq), 3)
}

func TestExtend(t *testing.T) {
	src := stringSource([]rune("I has a eror"))

	tests := []struct {
		name       string
		start, end int
		wantStart  int
		wantEnd    int
	}{
		{"inside word", 10, 11, 8, 12},
		{"zero width inside word", 3, 3, 2, 5},
		{"whole word", 2, 5, 2, 5},
		{"touching end of word", 5, 6, 2, 7},
		{"across words", 3, 9, 2, 12},
		{"start of buffer", 0, 0, 0, 1},
		{"end of buffer", 12, 12, 8, 12},
		{"clamped", -3, 40, 0, 12},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			start, end := Extend(src, test.start, test.end)
			assert.Equal(t, test.wantStart, start, "start")
			assert.Equal(t, test.wantEnd, end, "end")
		})
	}
}

func TestGrow(t *testing.T) {
	src := stringSource([]rune("I has a eror"))

	tests := []struct {
		name       string
		start, end int
		wantStart  int
		wantEnd    int
	}{
		{"inside word", 10, 11, 8, 12},
		{"whole word", 2, 5, 2, 5},
		{"after word", 5, 6, 5, 6},
		{"before word", 7, 8, 7, 8},
		{"across words", 3, 9, 2, 12},
		{"empty", 3, 3, 3, 3},
		{"clamped", -3, 40, 0, 12},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			start, end := Grow(src, test.start, test.end)
			assert.Equal(t, test.wantStart, start, "start")
			assert.Equal(t, test.wantEnd, end, "end")
		})
	}
}

func TestExtendAcrossChunks(t *testing.T) {
	long := make([]rune, 0, chunkSize*3)
	for len(long) < chunkSize*2 {
		long = append(long, 'a')
	}
	long = append(long, ' ', 'b')
	src := stringSource(long)

	start, end := Extend(src, chunkSize+10, chunkSize+11)
	assert.Equal(t, 0, start)
	assert.Equal(t, chunkSize*2, end)

	words := slices.Collect(Scan(src, 0, src.Len()))
	require.Len(t, words, 2)
	assert.Equal(t, chunkSize*2, words[0].Len())
	assert.Equal(t, Word{Text: "b", Start: chunkSize*2 + 1, End: chunkSize*2 + 2}, words[1])
}

func TestAt(t *testing.T) {
	src := stringSource([]rune("I has a eror, don't"))

	w, ok := At(src, 3)
	require.True(t, ok)
	assert.Equal(t, Word{Text: "has", Start: 2, End: 5}, w)

	w, ok = At(src, 17)
	require.True(t, ok)
	assert.Equal(t, "don't", w.Text)

	_, ok = At(src, 5)
	assert.False(t, ok)

	_, ok = At(src, 12)
	assert.False(t, ok)

	_, ok = At(src, 100)
	assert.False(t, ok)
}
