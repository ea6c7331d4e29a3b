// Package parser turns Cooklang source into an AST plus diagnostics. It
// drains the lexer's token stream into lines, parses each line in isolation
// with its own recoverable sub-parser, and never aborts on a recoverable
// error: it emits a diagnostic and substitutes a sentinel value so the
// analyzer can keep walking.
package parser

import (
	"strings"

	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/diag"
	"github.com/cooklang/cooklang/extensions"
	"github.com/cooklang/cooklang/lexer"
	"github.com/cooklang/cooklang/token"
)

// Result is the parser's complete output for one document.
type Result struct {
	Ast            *ast.Ast
	FrontMatter    string
	HasFrontMatter bool
	Errors         []diag.Error
	Warnings       []diag.Warning
}

// Parse lexes and parses source under the given extension set.
func Parse(source string, ext extensions.Extensions) Result {
	ctx := diag.NewContext(diag.CodeParser)

	l := lexer.New(source)

	var frontMatter string
	hasFrontMatter := false
	first := l.NextToken()
	if first.Type == token.YAML_FRONTMATTER {
		frontMatter = first.Literal
		hasFrontMatter = true
	} else {
		l.PutBackToken(first)
	}

	lines := splitLines(l)

	tree := &ast.Ast{}
	lastEmpty := true
	var prevLineIdx = -1 // index into tree.Lines of the previous emitted line

	for _, lineToks := range lines {
		if isEmptyLine(lineToks) {
			lastEmpty = true
			continue
		}

		firstSig := firstSignificant(lineToks)

		var parsed ast.Line
		var ok bool
		switch firstSig.Type {
		case token.METADATA:
			parsed, ok = withRecoverLine(ctx, lineToks, parseMetadataEntry)
		case token.SECTION:
			parsed, ok = withRecoverLine(ctx, lineToks, func(c *cursor, dc *diag.Context) (ast.Line, bool) {
				return parseSection(c, dc, ext)
			})
		default:
			parsed, ok = parseStep(lineToks, ctx, ext)
		}
		if !ok {
			continue
		}

		if ext.Has(extensions.MultilineSteps) && !lastEmpty && prevLineIdx >= 0 &&
			parsed.Kind == ast.LineStep && tree.Lines[prevLineIdx].Kind == ast.LineStep && !tree.Lines[prevLineIdx].IsText {
			joinMultilineStep(&tree.Lines[prevLineIdx], parsed)
			lastEmpty = false
			continue
		}

		tree.Lines = append(tree.Lines, parsed)
		prevLineIdx = len(tree.Lines) - 1
		lastEmpty = false
	}

	return Result{
		Ast:            tree,
		FrontMatter:    frontMatter,
		HasFrontMatter: hasFrontMatter,
		Errors:         ctx.Errors,
		Warnings:       ctx.Warnings,
	}
}

// splitLines drains l completely, grouping tokens between NEWLINE tokens
// (and up to EOF) into per-line token slices. NEWLINE and EOF tokens
// themselves are not included in any line's slice.
func splitLines(l *lexer.Lexer) [][]token.Token {
	var lines [][]token.Token
	var current []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			if len(current) > 0 {
				lines = append(lines, current)
			}
			break
		}
		if tok.Type == token.NEWLINE {
			lines = append(lines, current)
			current = nil
			continue
		}
		current = append(current, tok)
	}
	return lines
}

func isTrivia(t token.Token) bool {
	return t.Type == token.WHITESPACE || t.Type == token.LINE_COMMENT || t.Type == token.BLOCK_COMMENT
}

func isEmptyLine(toks []token.Token) bool {
	for _, t := range toks {
		if !isTrivia(t) {
			return false
		}
	}
	return true
}

func firstSignificant(toks []token.Token) token.Token {
	for _, t := range toks {
		if !isTrivia(t) {
			return t
		}
	}
	return token.Token{Type: token.EOF}
}

// joinMultilineStep splices cont's items onto the end of prev, inserting a
// single-space text fragment at the join point, and trims trailing/leading
// whitespace off the adjoining text items.
func joinMultilineStep(prev *ast.Line, cont ast.Line) {
	if n := len(prev.Items); n > 0 && prev.Items[n-1].Kind == ast.ItemText {
		prev.Items[n-1].Text = trimTrailing(prev.Items[n-1].Text)
	}
	items := cont.Items
	if len(items) > 0 && items[0].Kind == ast.ItemText {
		items[0].Text = trimLeading(items[0].Text)
	}
	joinAt := prev.Span.End
	gap := ast.NewText(" ", joinAt)
	prev.Items = append(prev.Items, ast.TextItem(gap))
	prev.Items = append(prev.Items, items...)
	prev.Span = prev.Span.Union(cont.Span)
}

func trimTrailing(t ast.Text) ast.Text {
	s := t.String()
	trimmed := strings.TrimRight(s, " \t")
	if trimmed == s {
		return t
	}
	return ast.NewText(trimmed, t.EnclosingSpan.Start)
}

func trimLeading(t ast.Text) ast.Text {
	s := t.String()
	trimmed := strings.TrimLeft(s, " \t")
	if trimmed == s {
		return t
	}
	delta := len(s) - len(trimmed)
	return ast.NewText(trimmed, t.EnclosingSpan.Start+delta)
}
