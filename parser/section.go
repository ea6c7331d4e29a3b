package parser

import (
	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/diag"
	"github.com/cooklang/cooklang/extensions"
	"github.com/cooklang/cooklang/token"
)

// parseSection recognizes one or more SECTION ('=') tokens, an optional
// name between the runs, and an optional trailing '=' run.
func parseSection(c *cursor, ctx *diag.Context, ext extensions.Extensions) (ast.Line, bool) {
	start := c.peek().Span.Start
	if c.peek().Type != token.SECTION {
		return ast.Line{}, false
	}
	for c.peek().Type == token.SECTION {
		c.next()
	}

	var nameToks []token.Token
	for c.peek().Type != token.EOF && c.peek().Type != token.SECTION {
		nameToks = append(nameToks, c.next())
	}

	for c.peek().Type == token.SECTION {
		c.next()
	}

	end := c.endSpan().End
	if len(nameToks) > 0 {
		end = nameToks[len(nameToks)-1].Span.End
	}
	if !c.atEnd() {
		end = c.toks[len(c.toks)-1].Span.End
	}

	name := assembleText(nameToks)
	if name.Trimmed() == "" {
		return ast.SectionLine(nil, spanFrom(start, end)), true
	}
	return ast.SectionLine(&name, spanFrom(start, end)), true
}
