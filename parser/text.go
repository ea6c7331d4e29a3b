package parser

import (
	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/span"
	"github.com/cooklang/cooklang/token"
)

// assembleText joins a run of tokens into a Text, dropping comment tokens
// entirely and stripping the leading escape-marker byte off BACKSLASH
// tokens. Adjacent raw tokens are merged into a single fragment so the
// result doesn't needlessly fragment plain words.
func assembleText(toks []token.Token) ast.Text {
	var text ast.Text
	first := true

	for _, t := range toks {
		switch t.Type {
		case token.LINE_COMMENT, token.BLOCK_COMMENT:
			continue
		case token.BACKSLASH:
			lit := t.Literal
			if len(lit) > 0 {
				lit = lit[1:]
			}
			appendFragment(&text, &first, lit, t.Span.Start+1)
		default:
			appendFragment(&text, &first, t.Literal, t.Span.Start)
		}
	}

	if first {
		// No fragments at all: anchor an empty Text at a sensible point.
		if len(toks) > 0 {
			return ast.EmptyText(toks[0].Span.Start)
		}
		return ast.EmptyText(0)
	}
	return text
}

func appendFragment(text *ast.Text, first *bool, s string, offset int) {
	if s == "" {
		return
	}
	if *first {
		*text = ast.NewText(s, offset)
		*first = false
		return
	}
	if n := len(text.Fragments); n > 0 {
		last := &text.Fragments[n-1]
		if last.Offset+len(last.Text) == offset {
			last.Text += s
			text.EnclosingSpan = text.EnclosingSpan.Union(span.New(offset, offset+len(s)))
			return
		}
	}
	text.Append(s, offset)
}

func spanFrom(start, end int) span.Span {
	if end < start {
		end = start
	}
	return span.New(start, end)
}
