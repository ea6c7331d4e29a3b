package parser

import (
	"github.com/cooklang/cooklang/diag"
	"github.com/cooklang/cooklang/span"
	"github.com/cooklang/cooklang/token"
)

// cursor walks a fixed slice of tokens belonging to a single line. It is the
// sub-parser's view of its input: cheap to snapshot and restore, which is
// what makes with_recover possible.
type cursor struct {
	toks []token.Token
	pos  int
}

func newCursor(toks []token.Token) *cursor {
	return &cursor{toks: toks}
}

func (c *cursor) peek() token.Token {
	if c.pos >= len(c.toks) {
		return token.Token{Type: token.EOF, Span: c.endSpan()}
	}
	return c.toks[c.pos]
}

func (c *cursor) peekAt(offset int) token.Token {
	i := c.pos + offset
	if i >= len(c.toks) || i < 0 {
		return token.Token{Type: token.EOF, Span: c.endSpan()}
	}
	return c.toks[i]
}

func (c *cursor) next() token.Token {
	t := c.peek()
	if c.pos < len(c.toks) {
		c.pos++
	}
	return t
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.toks)
}

func (c *cursor) endSpan() span.Span {
	if len(c.toks) == 0 {
		return span.Point(0)
	}
	end := c.toks[len(c.toks)-1].Span.End
	return span.Point(end)
}

// skipWhitespace advances past WHITESPACE tokens only (comments are
// significant structure at this layer and are handled by callers that
// assemble Text).
func (c *cursor) skipWhitespace() {
	for c.peek().Type == token.WHITESPACE {
		c.pos++
	}
}

// withRecover runs f against c. If f reports failure, c's position is
// rewound to where it stood before the call, but any diagnostics f already
// emitted into ctx remain: a partial parse can still be useful.
func withRecover[T any](c *cursor, ctx *diag.Context, f func(*cursor, *diag.Context) (T, bool)) (T, bool) {
	start := c.pos
	value, ok := f(c, ctx)
	if !ok {
		c.pos = start
	}
	return value, ok
}

// withRecoverLine is withRecover specialized for whole-line attempts: it
// builds a fresh cursor over toks, since line dispatch always starts from
// token zero regardless of which attempt is being made.
func withRecoverLine[T any](ctx *diag.Context, toks []token.Token, f func(*cursor, *diag.Context) (T, bool)) (T, bool) {
	c := newCursor(toks)
	return withRecover(c, ctx, f)
}
