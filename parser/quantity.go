package parser

import (
	"strings"

	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/diag"
	"github.com/cooklang/cooklang/span"
	"github.com/cooklang/cooklang/token"
)

// parseQuantity parses the content of a component's "{...}" braces,
// excluding the braces themselves, which the caller has already consumed.
func parseQuantity(c *cursor, ctx *diag.Context) (ast.Quantity, bool) {
	start := c.peek().Span.Start

	var values []span.Located[ast.Value]
	first, ok := parseQuantityValue(c, ctx)
	if !ok {
		return ast.RecoverQuantity(start), false
	}
	values = append(values, first)

	c.skipWhitespace()
	for c.peek().Type == token.PIPE {
		c.next()
		c.skipWhitespace()
		v, ok := parseQuantityValue(c, ctx)
		if !ok {
			break
		}
		values = append(values, v)
		c.skipWhitespace()
	}

	var autoScale *span.Span
	if c.peek().Type == token.AUTO_SCALE {
		t := c.next()
		sp := t.Span
		autoScale = &sp
		c.skipWhitespace()
		if len(values) > 1 {
			ctx.Error(diag.Error{
				Kind:    "QuantityScalingConflict",
				Message: "a quantity cannot both list per-serving values with '|' and be auto-scaled with '*'",
				Span:    sp,
			})
		}
	}

	var unit *span.Located[string]
	if c.peek().Type == token.PERCENT {
		c.next()
		c.skipWhitespace()
		unitToks := collectUntilBrace(c)
		u := assembleText(unitToks)
		if !u.IsEmpty() {
			loc := span.At(u.String(), u.EnclosingSpan)
			unit = &loc
		}
	} else if len(values) == 1 && autoScale == nil && values[0].Value.Kind != ast.ValueText {
		// shorthand: "{2 kg}" — a bare unit word directly after the value,
		// with no separator.
		c.skipWhitespace()
		if c.peek().Type == token.WORD || c.peek().Type == token.INT {
			unitToks := collectUntilBrace(c)
			u := assembleText(unitToks)
			if !u.IsEmpty() {
				loc := span.At(u.String(), u.EnclosingSpan)
				unit = &loc
			}
		}
	}

	var qv ast.QuantityValue
	if len(values) == 1 {
		qv = ast.SingleValue(values[0], autoScale)
	} else {
		qv = ast.ManyValues(values)
	}

	return ast.Quantity{Value: qv, Unit: unit}, true
}

func collectUntilBrace(c *cursor) []token.Token {
	var out []token.Token
	for c.peek().Type != token.RBRACE && c.peek().Type != token.EOF {
		out = append(out, c.next())
	}
	return out
}

// parseQuantityValue parses one `value` per the quantity grammar: a numeric
// value (mixed number, fraction, range, or plain number) or, failing that, a
// run of text up to the next separator.
func parseQuantityValue(c *cursor, ctx *diag.Context) (span.Located[ast.Value], bool) {
	c.skipWhitespace()
	start := c.pos

	if v, sp, ok := tryParseNumericValue(c, ctx); ok {
		return span.At(v, sp), true
	}
	c.pos = start

	return parseTextValue(c)
}

// tryParseNumericValue implements mixed_num | frac | range | num.
func tryParseNumericValue(c *cursor, ctx *diag.Context) (ast.Value, span.Span, bool) {
	startPos := c.pos
	n1, sp1, ok := parseNumberToken(c)
	if !ok {
		c.pos = startPos
		return ast.Value{}, span.Span{}, false
	}

	save := c.pos
	c.skipWhitespace()

	// frac: "int WS / WS int"
	if c.peek().Type == token.SLASH {
		c.next()
		c.skipWhitespace()
		n2, sp2, ok := parseIntToken(c)
		if !ok {
			c.pos = save
			return ast.NumberValue(n1), sp1, true
		}
		if n2 == 0 {
			ctx.Error(diag.Error{Kind: "FractionDivisionByZero", Message: "fraction denominator cannot be zero", Span: sp2})
			return ast.Value{}, span.Span{}, false
		}
		val, ok := parseFraction(int64(n1), int64(n2))
		if !ok {
			return ast.Value{}, span.Span{}, false
		}
		return ast.NumberValue(val), span.New(sp1.Start, sp2.End), true
	}

	// mixed_num: "int WS int WS / WS int"
	if c.peek().Type == token.INT {
		mixedSave := c.pos
		n2, _, ok := parseIntToken(c)
		if ok {
			c.skipWhitespace()
			if c.peek().Type == token.SLASH {
				c.next()
				c.skipWhitespace()
				n3, sp3, ok := parseIntToken(c)
				if ok && n3 != 0 {
					val, ok := parseMixedNumber(int64(n1), int64(n2), int64(n3))
					if ok {
						return ast.NumberValue(val), span.New(sp1.Start, sp3.End), true
					}
				}
			}
		}
		c.pos = mixedSave
	}

	// range: "num WS - WS num"
	if c.peek().Type == token.HIDDEN {
		rangeSave := c.pos
		c.next()
		c.skipWhitespace()
		n2, sp2, ok := parseNumberToken(c)
		if ok {
			return ast.RangeValue(n1, n2), span.New(sp1.Start, sp2.End), true
		}
		c.pos = rangeSave
	}

	c.pos = save
	return ast.NumberValue(n1), sp1, true
}

// parseNumberToken parses a plain number: an INT, optionally followed
// immediately by a DOT and another INT for the fractional part.
func parseNumberToken(c *cursor) (float64, span.Span, bool) {
	intTok := c.peek()
	if intTok.Type != token.INT {
		return 0, span.Span{}, false
	}
	c.next()
	lit := intTok.Literal
	end := intTok.Span.End

	if c.peek().Type == token.DOT && c.peekAt(1).Type == token.INT {
		c.next() // dot
		frac := c.next()
		lit = lit + "." + frac.Literal
		end = frac.Span.End
	}

	f, ok := parseFloatLiteral(lit)
	if !ok {
		return 0, span.Span{}, false
	}
	return f, span.New(intTok.Span.Start, end), true
}

func parseIntToken(c *cursor) (int, span.Span, bool) {
	t := c.peek()
	if t.Type != token.INT {
		return 0, span.Span{}, false
	}
	c.next()
	n, ok := parseIntLiteral(t.Literal)
	if !ok {
		return 0, t.Span, false
	}
	return int(n), t.Span, true
}

// parseTextValue consumes tokens up to the next value/unit separator as a
// free-text value, e.g. "a pinch".
func parseTextValue(c *cursor) (span.Located[ast.Value], bool) {
	start := c.peek().Span.Start
	var toks []token.Token
	for {
		t := c.peek()
		if t.Type == token.EOF || t.Type == token.RBRACE || t.Type == token.PIPE ||
			t.Type == token.AUTO_SCALE || t.Type == token.PERCENT {
			break
		}
		toks = append(toks, c.next())
	}
	text := assembleText(toks)
	trimmed := strings.TrimSpace(text.String())
	end := text.EnclosingSpan.End
	if end < start {
		end = start
	}
	return span.At(ast.TextValue(trimmed), span.New(start, end)), true
}
