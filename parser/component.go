package parser

import (
	"strconv"
	"strings"

	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/diag"
	"github.com/cooklang/cooklang/extensions"
	"github.com/cooklang/cooklang/span"
	"github.com/cooklang/cooklang/token"
)

// componentResult is the value with_recover threads through component
// parsing: a located Component on success.
type componentResult = span.Located[ast.Component]

// parseComponent parses one inline component starting at its sigil token
// (INGREDIENT, COOKWARE, or TIMER, already identified by the caller but not
// yet consumed) and returns the component plus the span it occupies.
func parseComponent(c *cursor, ctx *diag.Context, ext extensions.Extensions) (span.Located[ast.Component], bool) {
	sigil := c.peek()
	var kind ast.ComponentKind
	switch sigil.Type {
	case token.INGREDIENT:
		kind = ast.KindIngredient
	case token.COOKWARE:
		kind = ast.KindCookware
	case token.TIMER:
		kind = ast.KindTimer
	default:
		return span.Located[ast.Component]{}, false
	}
	start := sigil.Span.Start
	c.next()

	mods, modsOk := parseModifiers(c, ctx, kind, ext)
	if !modsOk {
		return span.Located[ast.Component]{}, false
	}

	name, alias, quantity, impliedRef, ok := parseNameBody(c, ctx, kind, ext)
	if !ok {
		return span.Located[ast.Component]{}, false
	}
	if impliedRef && kind == ast.KindIngredient {
		mods |= ast.ModRef
	}

	note := parseNote(c, ctx, kind, ext)

	end := c.toks[c.pos-1].Span.End
	sp := span.New(start, end)

	switch kind {
	case ast.KindIngredient:
		if name.Trimmed() == "" {
			ctx.Error(diag.Error{Kind: "IngredientEmptyName", Message: "ingredient name cannot be empty", Span: sp})
			return span.Located[ast.Component]{}, false
		}
		ing := ast.Ingredient{Modifiers: mods, Name: name, Alias: alias, Quantity: quantity, Note: note}
		// A bare-digit reference name, e.g. "@&2{}", names a step rather
		// than a prior ingredient; §4.3.1 resolves it against the current
		// section's step list instead of by-name lookup.
		if mods.Has(ast.ModRef) {
			if n, err := strconv.Atoi(strings.TrimSpace(name.Trimmed())); err == nil {
				if mods&^ast.ModRef != 0 {
					ctx.Error(diag.Error{Kind: "InvalidIntermediateReference", Message: "an intermediate reference may not carry other modifiers", Span: sp})
				} else {
					data := ast.IntermediateData{TargetKind: ast.IntermediateStep, RefMode: ast.RefRelative, Val: int32(n)}
					ing.Intermediate = &data
				}
			}
		}
		return span.At(ast.IngredientComponent(ing), sp), true
	case ast.KindCookware:
		cw := ast.Cookware{Modifiers: mods, Name: name, Alias: alias, Quantity: quantity, Note: note}
		if quantity != nil && (quantity.Unit != nil) {
			ctx.Error(diag.Error{Kind: "CookwareQuantityHasUnit", Message: "cookware quantity may not have a unit", Span: sp})
		}
		if quantity != nil && quantity.Value.Kind == ast.QVSingle && quantity.Value.AutoScale != nil {
			ctx.Error(diag.Error{Kind: "CookwareQuantityAutoScaled", Message: "cookware quantity may not be auto-scaled", Span: sp})
		}
		return span.At(ast.CookwareComponent(cw), sp), true
	default: // timer
		var namePtr *ast.Text
		if !name.IsEmpty() {
			namePtr = &name
		}
		tm := ast.Timer{Name: namePtr, Quantity: quantity}
		if alias != nil {
			ctx.Error(diag.Error{Kind: "TimerHasAlias", Message: "timers cannot have an alias", Span: sp})
		}
		if note != nil {
			ctx.Warn(diag.Warning{Kind: "TimerNoteIgnored", Message: "timer notes are ignored", Span: sp})
		}
		if quantity == nil && namePtr == nil {
			ctx.Error(diag.Error{Kind: "TimerMissingNameOrQuantity", Message: "a timer must have a name or a quantity", Span: sp})
			return span.Located[ast.Component]{}, false
		}
		if quantity != nil && quantity.Unit == nil {
			ctx.Error(diag.Error{Kind: "TimerMissingUnit", Message: "a timer quantity must have a unit", Span: sp})
		}
		if ext.Has(extensions.TimerRequiresTime) && quantity == nil {
			ctx.Error(diag.Error{Kind: "TimerRequiresTime", Message: "a timer must have a quantity", Span: sp})
		}
		return span.At(ast.TimerComponent(tm), sp), true
	}
}

// parseModifiers consumes a run of modifier sigil tokens. Repeats are
// errors; modifiers on cookware/timer are errors, gated by extension.
func parseModifiers(c *cursor, ctx *diag.Context, kind ast.ComponentKind, ext extensions.Extensions) (ast.Modifiers, bool) {
	if !ext.Has(extensions.ComponentModifiers) {
		return 0, true
	}
	var mods ast.Modifiers
	for {
		var bit ast.Modifiers
		switch c.peek().Type {
		case token.INGREDIENT:
			bit = ast.ModRecipe
		case token.REF:
			bit = ast.ModRef
		case token.OPT:
			bit = ast.ModOpt
		case token.NEW:
			bit = ast.ModNew
		case token.HIDDEN:
			bit = ast.ModHidden
		default:
			return mods, true
		}
		sp := c.peek().Span
		if mods.Has(bit) {
			ctx.Error(diag.Error{Kind: "DuplicateModifier", Message: "modifier repeated", Span: sp})
			return mods, false
		}
		mods |= bit
		c.next()
		if kind != ast.KindIngredient {
			ctx.Error(diag.Error{Kind: "ModifiersNotAllowed", Message: "only ingredients may have modifiers", Span: sp})
		}
	}
}

// parseNameBody parses name_body := long_body | short_body. impliedRef
// reports whether the quantity braces held a bare "&" (e.g. "flour{&}"),
// shorthand for "this is a reference that also carries its own quantity",
// used by components that never wrote the "&" modifier before their name.
func parseNameBody(c *cursor, ctx *diag.Context, kind ast.ComponentKind, ext extensions.Extensions) (name ast.Text, alias *ast.Text, quantity *ast.Quantity, impliedRef bool, ok bool) {
	hasLongBody, sep := scanForLongBody(c)

	if !hasLongBody {
		t := c.peek()
		if t.Type != token.WORD && t.Type != token.INT {
			return ast.Text{}, nil, nil, false, false
		}
		c.next()
		return ast.NewText(t.Literal, t.Span.Start), nil, nil, false, true
	}

	var nameToks []token.Token
	for c.peek().Type != sep {
		if c.peek().Type == token.EOF {
			return ast.Text{}, nil, nil, false, false
		}
		nameToks = append(nameToks, c.next())
	}
	name = assembleText(nameToks)

	if sep == token.PIPE {
		if !ext.Has(extensions.ComponentAlias) {
			ctx.Error(diag.Error{Kind: "ComponentAliasNotAllowed", Message: "component aliases are not enabled", Span: c.peek().Span})
		} else if kind != ast.KindIngredient {
			ctx.Error(diag.Error{Kind: "AliasNotAllowed", Message: "only ingredients may have an alias", Span: c.peek().Span})
		}
		c.next() // consume PIPE
		var aliasToks []token.Token
		for c.peek().Type != token.LBRACE {
			if c.peek().Type == token.EOF {
				return ast.Text{}, nil, nil, false, false
			}
			aliasToks = append(aliasToks, c.next())
		}
		a := assembleText(aliasToks)
		alias = &a
	}

	if c.peek().Type != token.LBRACE {
		return ast.Text{}, nil, nil, false, false
	}
	c.next() // consume LBRACE

	if c.peek().Type == token.RBRACE {
		c.next()
		return name, alias, nil, false, true
	}

	// "{&}": a bare reference sigil standing in for a quantity means
	// "this reference carries its own quantity" without having written
	// "&" before the name. The AST records a placeholder quantity (an
	// empty text value); the analyzer does not replace it with the
	// definition's quantity.
	if c.peek().Type == token.REF && c.peekAt(1).Type == token.RBRACE {
		at := c.peek().Span.Start
		c.next() // consume REF
		c.next() // consume RBRACE
		q := ast.RecoverQuantity(at)
		return name, alias, &q, true, true
	}

	q, ok := parseQuantity(c, ctx)
	if !ok {
		return ast.Text{}, nil, nil, false, false
	}
	if c.peek().Type != token.RBRACE {
		ctx.Error(diag.Error{Kind: "UnterminatedQuantity", Message: "expected '}' to close quantity", Span: c.peek().Span})
		return ast.Text{}, nil, nil, false, false
	}
	c.next() // consume RBRACE
	return name, alias, &q, false, true
}

// scanForLongBody looks ahead (without consuming) for a PIPE or LBRACE
// before hitting the end of the line or the start of another component,
// which distinguishes long_body from short_body.
func scanForLongBody(c *cursor) (bool, token.Type) {
	for i := c.pos; i < len(c.toks); i++ {
		switch c.toks[i].Type {
		case token.PIPE:
			return true, token.PIPE
		case token.LBRACE:
			return true, token.LBRACE
		case token.INGREDIENT, token.COOKWARE, token.TIMER:
			return false, ""
		}
	}
	return false, ""
}

// parseNote parses an optional "(...)" note, skipping leading whitespace.
func parseNote(c *cursor, ctx *diag.Context, kind ast.ComponentKind, ext extensions.Extensions) *ast.Text {
	save := c.pos
	c.skipWhitespace()
	if c.peek().Type != token.LPAREN {
		c.pos = save
		return nil
	}
	start := c.peek().Span.Start
	c.next()
	var toks []token.Token
	for c.peek().Type != token.RPAREN {
		if c.peek().Type == token.EOF {
			c.pos = save
			return nil
		}
		toks = append(toks, c.next())
	}
	c.next() // consume RPAREN

	if !ext.Has(extensions.ComponentNote) {
		ctx.Warn(diag.Warning{Kind: "ComponentNoteNotAllowed", Message: "component notes are not enabled", Span: span.New(start, c.toks[c.pos-1].Span.End)})
		return nil
	}
	// Timers may not carry a note, but the text is still parsed and handed
	// back so the caller can warn-and-discard it (§4.2); dropping it here
	// would make that warning unreachable.
	note := assembleText(toks)
	return &note
}
