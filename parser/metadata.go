package parser

import (
	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/diag"
	"github.com/cooklang/cooklang/token"
)

// parseMetadataEntry recognizes "key: value" after a METADATA marker. Key
// and value are the trimmed text either side of the first COLON; an empty
// value warns but still produces a line.
func parseMetadataEntry(c *cursor, ctx *diag.Context) (ast.Line, bool) {
	lineStart := c.peek().Span.Start
	marker := c.next()
	if marker.Type != token.METADATA {
		return ast.Line{}, false
	}

	keyToks, colonFound := takeUntilColon(c)
	if !colonFound {
		ctx.Error(diag.Error{
			Kind:    "MalformedMetadataEntry",
			Message: "metadata entry is missing a ':' separator",
			Span:    marker.Span,
		})
		return ast.Line{}, false
	}
	valueToks := takeRest(c)

	key := assembleText(keyToks)
	value := assembleText(valueToks)

	keyTrimmed := key.Trimmed()
	valueTrimmed := value.Trimmed()
	if valueTrimmed == "" {
		ctx.Warn(diag.Warning{
			Kind:    "EmptyMetadataValue",
			Message: "metadata key " + keyTrimmed + " has an empty value",
			Span:    value.EnclosingSpan,
		})
	}

	lineEnd := c.endSpan().End
	return ast.MetadataLine(key, value, spanFrom(lineStart, lineEnd)), true
}

func takeUntilColon(c *cursor) ([]token.Token, bool) {
	var out []token.Token
	for {
		t := c.peek()
		if t.Type == token.EOF {
			return out, false
		}
		if t.Type == token.COLON {
			c.next()
			return out, true
		}
		out = append(out, c.next())
	}
}

func takeRest(c *cursor) []token.Token {
	var out []token.Token
	for !c.atEnd() {
		out = append(out, c.next())
	}
	return out
}
