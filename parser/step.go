package parser

import (
	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/diag"
	"github.com/cooklang/cooklang/extensions"
	"github.com/cooklang/cooklang/token"
)

// parseStep parses one non-metadata, non-section line as a step: either a
// single forced-text item (prefixed with '>') or a sequence of alternating
// text and component items.
func parseStep(toks []token.Token, ctx *diag.Context, ext extensions.Extensions) (ast.Line, bool) {
	if len(toks) == 0 {
		return ast.Line{}, false
	}
	lineStart := toks[0].Span.Start
	lineEnd := toks[len(toks)-1].Span.End

	first := firstSignificant(toks)
	if first.Type == token.FORCE_TEXT {
		c := newCursor(toks)
		for c.peek().Type != token.FORCE_TEXT {
			c.next()
		}
		c.next() // consume '>'
		rest := takeRest(c)
		text := assembleText(rest)
		return ast.StepLine(true, []ast.Item{ast.TextItem(text)}, spanFrom(lineStart, lineEnd)), true
	}

	c := newCursor(toks)
	var items []ast.Item
	var textRun []token.Token

	flush := func() {
		if len(textRun) == 0 {
			return
		}
		t := assembleText(textRun)
		if !t.IsEmpty() {
			items = append(items, ast.TextItem(t))
		}
		textRun = nil
	}

	for !c.atEnd() {
		switch c.peek().Type {
		case token.INGREDIENT, token.COOKWARE, token.TIMER:
			loc, ok := withRecover(c, ctx, func(cc *cursor, dc *diag.Context) (componentResult, bool) {
				return parseComponent(cc, dc, ext)
			})
			if ok {
				flush()
				items = append(items, ast.ComponentItem(loc))
			} else {
				// Advance exactly one token to guarantee forward progress,
				// folding the sigil into the surrounding text run.
				textRun = append(textRun, c.next())
			}
		default:
			textRun = append(textRun, c.next())
		}
	}
	flush()

	return ast.StepLine(false, items, spanFrom(lineStart, lineEnd)), true
}
