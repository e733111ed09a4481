package main

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"libdb.so/inlinespell/internal/region"
)

var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
).Parser()

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// markdownExclusions returns the character spans of src that are not prose:
// code, links, raw HTML and the Markdown syntax itself.
func markdownExclusions(src []byte) []region.Span {
	doc := markdownParser.Parse(text.NewReader(src))

	var prose region.Set
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := n.(type) {
		case *ast.CodeSpan, *ast.CodeBlock, *ast.FencedCodeBlock,
			*ast.HTMLBlock, *ast.RawHTML, *ast.AutoLink:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			prose.Add(n.Segment.Start, n.Segment.Stop)
		}

		return ast.WalkContinue, nil
	})

	excluded := region.New(region.Span{Start: 0, End: len(src)})
	excluded.SubtractSet(&prose)

	// Segments are in bytes and the buffer counts characters.
	offsets := make([]int, len(src)+1)
	var n int
	for i := 0; i < len(src); {
		_, size := utf8.DecodeRune(src[i:])
		for j := range size {
			offsets[i+j] = n
		}
		i += size
		n++
	}
	offsets[len(src)] = n

	spans := make([]region.Span, 0, excluded.Len())
	for span := range excluded.All() {
		spans = append(spans, region.Span{Start: offsets[span.Start], End: offsets[span.End]})
	}
	return spans
}
