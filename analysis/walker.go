package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/convert"
	"github.com/cooklang/cooklang/diag"
	"github.com/cooklang/cooklang/extensions"
	"github.com/cooklang/cooklang/metadata"
	"github.com/cooklang/cooklang/quantity"
	"github.com/cooklang/cooklang/span"
)

// Options configures one Analyze call.
type Options struct {
	Extensions extensions.Extensions
	// Registry is consulted for unit resolution, best-unit selection, and
	// the lazily-built temperature regex. Advanced unit checks and inline
	// temperature recognition are skipped (not errored) when nil.
	Registry *convert.Registry
	// RecipeExists, if set, is called for every RECIPE-marked ingredient
	// that is not itself a reference; a false result produces a warning.
	RecipeExists func(name string) bool
}

// Result is the full output of one analysis pass.
type Result struct {
	Content  RecipeContent
	Errors   []diag.Error
	Warnings []diag.Warning
}

// Analyze walks a parsed AST into a resolved RecipeContent, consuming any
// already-decoded front-matter metadata as the initial metadata map.
func Analyze(tree *ast.Ast, frontMatter map[string]string, opts Options) Result {
	w := &walker{
		ctx:  diag.NewContext(diag.CodeAnalysis),
		opts: opts,
	}
	w.content.Metadata = make(map[string]string, len(frontMatter))
	for k, v := range frontMatter {
		w.content.Metadata[k] = v
	}

	for _, line := range tree.Lines {
		switch line.Kind {
		case ast.LineMetadata:
			w.handleMetadata(line)
		case ast.LineSection:
			w.flushSection()
			w.startSection(line)
		case ast.LineStep:
			w.handleStep(line)
		}
	}
	w.flushSection()

	return Result{Content: w.content, Errors: w.ctx.Errors, Warnings: w.ctx.Warnings}
}

type walker struct {
	ctx  *diag.Context
	opts Options

	content        RecipeContent
	currentSection Section

	defineMode           metadata.DefineMode
	duplicateMode        metadata.DuplicateMode
	autoScaleIngredients bool
	servings             []int

	stepCounter int
	tempWarned  bool
}

func (w *walker) startSection(line ast.Line) {
	if line.Name != nil {
		name := line.Name.Trimmed()
		w.currentSection.Name = &name
	}
}

// flushSection appends the current section only if it has at least one
// step; an empty section (e.g. two consecutive section headers) is
// dropped, but the step counter still resets for the next one.
func (w *walker) flushSection() {
	if len(w.currentSection.Steps) > 0 {
		w.content.Sections = append(w.content.Sections, w.currentSection)
	}
	w.currentSection = Section{}
	w.stepCounter = 0
}

// handleMetadata processes one ">>" line: special-key dispatch (when MODES
// is enabled and the key is bracketed), the servings validator, and
// fallback raw storage.
func (w *walker) handleMetadata(line ast.Line) {
	key := line.Key.Trimmed()
	value := line.Value.Trimmed()

	if value == "" {
		w.ctx.Warn(diag.Warning{Kind: "EmptyMetadataValue", Message: "metadata value is empty", Span: line.Value.EnclosingSpan})
	}

	if w.opts.Extensions.Has(extensions.Modes) && len(key) >= 2 && strings.HasPrefix(key, "[") && strings.HasSuffix(key, "]") {
		inner := key[1 : len(key)-1]
		switch metadata.ParseSpecialKey(inner) {
		case metadata.KeyDefineMode:
			if mode, ok := metadata.ParseDefineMode(value); ok {
				w.defineMode = mode
			} else {
				w.ctx.Error(diag.Error{Kind: "InvalidSpecialMetadataValue", Message: fmt.Sprintf("invalid define mode %q", value), Span: line.Value.EnclosingSpan})
			}
			return
		case metadata.KeyDuplicateMode:
			if mode, ok := metadata.ParseDuplicateMode(value); ok {
				w.duplicateMode = mode
			} else {
				w.ctx.Error(diag.Error{Kind: "InvalidSpecialMetadataValue", Message: fmt.Sprintf("invalid duplicate mode %q", value), Span: line.Value.EnclosingSpan})
			}
			return
		case metadata.KeyAutoScale:
			if b, ok := metadata.ParseAutoScale(value); ok {
				w.autoScaleIngredients = b
			} else {
				w.ctx.Error(diag.Error{Kind: "InvalidSpecialMetadataValue", Message: fmt.Sprintf("invalid auto scale value %q", value), Span: line.Value.EnclosingSpan})
			}
			return
		default:
			w.ctx.Warn(diag.Warning{Kind: "UnknownSpecialKey", Message: fmt.Sprintf("unknown special metadata key %q", inner), Span: line.Key.EnclosingSpan})
		}
	}

	if strings.EqualFold(key, "servings") && value != "" {
		if vals, err := metadata.ParseServings(value); err != nil {
			w.ctx.Warn(diag.Warning{Kind: "InvalidMetadataValue", Message: err.Error(), Span: line.Value.EnclosingSpan})
		} else {
			w.servings = vals
		}
	}

	w.content.Metadata[key] = value
}

// handleStep processes one step line: text splitting (temperature
// extraction or component-mode alphanumeric-text warning), component
// dispatch, step-counter/section bookkeeping.
func (w *walker) handleStep(line ast.Line) {
	effectiveText := line.IsText || w.defineMode == metadata.DefineText

	var items []Item
	for _, it := range line.Items {
		switch it.Kind {
		case ast.ItemText:
			items = append(items, w.resolveTextItem(it.Text)...)
		case ast.ItemComponent:
			if effectiveText {
				w.ctx.Warn(diag.Warning{Kind: "ComponentInTextMode", Message: "component ignored because this step is text-only", Span: it.Component.Span})
				continue
			}
			if item, ok := w.resolveComponent(it.Component); ok {
				items = append(items, item)
			}
		}
	}

	var number *int
	if !effectiveText {
		w.stepCounter++
		n := w.stepCounter
		number = &n
	}

	if w.defineMode != metadata.DefineComponents {
		w.currentSection.Steps = append(w.currentSection.Steps, Step{Items: items, Number: number})
	}
}

// resolveTextItem handles one text item: dropped-or-warned in component
// define mode, otherwise scanned for an inline temperature match.
func (w *walker) resolveTextItem(t ast.Text) []Item {
	s := t.String()

	if w.defineMode == metadata.DefineComponents {
		if containsAlnum(s) {
			w.ctx.Warn(diag.Warning{Kind: "TextInComponentDefineMode", Message: "text is ignored when define mode is components", Span: t.EnclosingSpan})
		}
		return nil
	}

	if s == "" {
		return nil
	}

	if !w.opts.Extensions.Has(extensions.Temperature) || w.opts.Registry == nil {
		return []Item{{Kind: ItemText, Text: s}}
	}

	re, err := w.opts.Registry.TemperatureRegex()
	if err != nil {
		if !w.tempWarned {
			w.ctx.Warn(diag.Warning{Kind: "TemperatureRegexCompileFailure", Message: err.Error(), Span: t.EnclosingSpan})
			w.tempWarned = true
		}
		return []Item{{Kind: ItemText, Text: s}}
	}

	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return []Item{{Kind: ItemText, Text: s}}
	}

	prefix := s[:loc[0]]
	suffix := s[loc[1]:]
	numStr := strings.ReplaceAll(s[loc[2]:loc[3]], ",", ".")
	n, _ := strconv.ParseFloat(numStr, 64)
	unitText := s[loc[6]:loc[7]]

	q := quantity.NewQuantity(quantity.FixedValue(quantity.NumberValue(n)), quantity.NewQuantityUnit(unitText))
	idx := len(w.content.InlineQuantities)
	w.content.InlineQuantities = append(w.content.InlineQuantities, InlineQuantity{Quantity: q, Span: t.EnclosingSpan})

	var items []Item
	if prefix != "" {
		items = append(items, Item{Kind: ItemText, Text: prefix})
	}
	items = append(items, Item{Kind: ItemInlineQuantity, InlineQuantity: idx})
	if suffix != "" {
		items = append(items, Item{Kind: ItemText, Text: suffix})
	}
	return items
}

func containsAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func (w *walker) resolveComponent(loc span.Located[ast.Component]) (Item, bool) {
	switch loc.Value.Kind {
	case ast.KindIngredient:
		return w.resolveIngredient(loc)
	case ast.KindCookware:
		return w.resolveCookware(loc)
	default:
		return w.resolveTimer(loc)
	}
}

func textPtr(t *ast.Text) *string {
	if t == nil {
		return nil
	}
	s := t.Trimmed()
	return &s
}

func (w *walker) resolveIngredient(loc span.Located[ast.Component]) (Item, bool) {
	astIng := loc.Value.Ingredient
	sp := loc.Span
	name := astIng.Name.Trimmed()

	var qty *quantity.Quantity
	if astIng.Quantity != nil {
		q := w.lowerQuantity(*astIng.Quantity, true, sp)
		qty = &q
	}

	ing := Ingredient{
		Name:          name,
		Alias:         textPtr(astIng.Alias),
		Quantity:      qty,
		Note:          textPtr(astIng.Note),
		Modifiers:     astIng.Modifiers,
		Relation:      NewDefinition(),
		DefinedInStep: w.defineMode != metadata.DefineComponents,
		Span:          sp,
	}

	if astIng.Intermediate != nil {
		if !astIng.Modifiers.Has(ast.ModRef) || astIng.Modifiers.Any(ast.ModRecipe|ast.ModHidden|ast.ModNew) {
			w.ctx.Error(diag.Error{Kind: "InvalidIntermediateReference", Message: "an intermediate reference must carry only the '&' modifier", Span: sp})
			return Item{}, false
		}
		rel, ok := resolveIntermediateRef(*astIng.Intermediate, w.currentSection, len(w.content.Sections), w.ctx, sp)
		if !ok {
			return Item{}, false
		}
		ing.Relation = rel
		idx := len(w.content.Ingredients)
		w.content.Ingredients = append(w.content.Ingredients, ing)
		return Item{Kind: ItemComponent, ComponentKind: ComponentIngredient, ComponentIndex: idx}, true
	}

	decision, ok := resolveReference[Ingredient](
		w.content.Ingredients,
		name,
		astIng.Modifiers,
		ast.ModHidden|ast.ModOpt|ast.ModRecipe,
		w.duplicateMode,
		w.defineMode,
		w.ctx,
		sp,
	)
	if !ok {
		return Item{}, false
	}

	if decision.IsReference {
		def := w.content.Ingredients[decision.TargetIndex]

		if !def.DefinedInStep && def.Quantity != nil && qty != nil {
			w.ctx.Error(diag.Error{
				Kind: "ConflictingReferenceQuantities", Message: "both the definition and this reference specify a quantity", Span: sp,
				Labels: []diag.Label{{Span: def.Span, Message: "definition here"}},
			})
		}

		if w.opts.Extensions.Has(extensions.AdvancedUnits) && w.opts.Registry != nil {
			w.warnIfIncompatible(def.Quantity, qty, def.Span, sp)
			for _, refIdx := range def.Relation.ReferencedFrom {
				other := w.content.Ingredients[refIdx]
				w.warnIfIncompatible(other.Quantity, qty, other.Span, sp)
			}
		}

		if ing.Note != nil {
			w.ctx.Error(diag.Error{Kind: "ReferenceHasNote", Message: "a reference may not have a note", Span: sp})
		}
		if qty != nil && qty.Value.Kind == quantity.Fixed && qty.Value.FixedValue.Kind == quantity.Text {
			w.ctx.Warn(diag.Warning{Kind: "ReferenceTextValue", Message: "a text quantity value on a reference prevents totals", Span: sp})
		}

		ing.Modifiers = decision.Modifiers
		ing.Relation = NewIngredientReference(TargetIngredient, decision.TargetIndex)
		idx := len(w.content.Ingredients)
		w.content.Ingredients = append(w.content.Ingredients, ing)
		w.content.Ingredients[decision.TargetIndex].Relation.ReferencedFrom = append(w.content.Ingredients[decision.TargetIndex].Relation.ReferencedFrom, idx)
		return Item{Kind: ItemComponent, ComponentKind: ComponentIngredient, ComponentIndex: idx}, true
	}

	ing.Modifiers = decision.Modifiers
	if ing.Modifiers.Has(ast.ModRecipe) && w.opts.RecipeExists != nil && !w.opts.RecipeExists(name) {
		w.ctx.Warn(diag.Warning{Kind: "ReferencedRecipeNotFound", Message: fmt.Sprintf("no recipe named %q found", name), Span: sp})
	}
	idx := len(w.content.Ingredients)
	w.content.Ingredients = append(w.content.Ingredients, ing)
	return Item{Kind: ItemComponent, ComponentKind: ComponentIngredient, ComponentIndex: idx}, true
}

// warnIfIncompatible checks two optional quantities' units for
// compatibility, warning with both spans if they are known and disagree.
func (w *walker) warnIfIncompatible(a, b *quantity.Quantity, aSpan, bSpan span.Span) {
	if a == nil || a.Unit == nil || b == nil || b.Unit == nil {
		return
	}
	infoA := a.Unit.Resolve(w.opts.Registry)
	infoB := b.Unit.Resolve(w.opts.Registry)

	compatible := true
	switch {
	case infoA.Kind == quantity.UnitKnown && infoB.Kind == quantity.UnitKnown:
		compatible = infoA.Unit.PhysicalQuantity == infoB.Unit.PhysicalQuantity
	case infoA.Kind == quantity.UnitUnknown && infoB.Kind == quantity.UnitUnknown:
		compatible = strings.EqualFold(strings.TrimSpace(a.Unit.Text()), strings.TrimSpace(b.Unit.Text()))
	default:
		compatible = false
	}
	if !compatible {
		w.ctx.Warn(diag.Warning{
			Kind: "IncompatibleUnits", Message: "this reference's unit is not compatible with a prior quantity for the same ingredient", Span: bSpan,
			Labels: []diag.Label{{Span: aSpan, Message: "prior quantity here"}},
		})
	}
}

func (w *walker) resolveCookware(loc span.Located[ast.Component]) (Item, bool) {
	c := loc.Value.Cookware
	sp := loc.Span
	name := c.Name.Trimmed()

	var qty *quantity.Quantity
	if c.Quantity != nil {
		q := w.lowerQuantity(*c.Quantity, false, sp)
		qty = &q
	}

	cw := Cookware{
		Name:      name,
		Alias:     textPtr(c.Alias),
		Quantity:  qty,
		Note:      textPtr(c.Note),
		Modifiers: c.Modifiers,
		Relation:  NewComponentDefinition(),
		Span:      sp,
	}

	decision, ok := resolveReference[Cookware](
		w.content.Cookware,
		name,
		c.Modifiers,
		ast.ModHidden|ast.ModOpt,
		w.duplicateMode,
		w.defineMode,
		w.ctx,
		sp,
	)
	if !ok {
		return Item{}, false
	}

	if decision.IsReference {
		if cw.Note != nil {
			w.ctx.Error(diag.Error{Kind: "ReferenceHasNote", Message: "a reference may not have a note", Span: sp})
		}
		if qty != nil {
			w.ctx.Error(diag.Error{Kind: "ReferenceHasQuantity", Message: "a cookware reference may not have a quantity", Span: sp})
		}
		cw.Modifiers = decision.Modifiers
		cw.Relation = NewComponentReference(decision.TargetIndex)
		idx := len(w.content.Cookware)
		w.content.Cookware = append(w.content.Cookware, cw)
		w.content.Cookware[decision.TargetIndex].Relation.ReferencedFrom = append(w.content.Cookware[decision.TargetIndex].Relation.ReferencedFrom, idx)
		return Item{Kind: ItemComponent, ComponentKind: ComponentCookware, ComponentIndex: idx}, true
	}

	cw.Modifiers = decision.Modifiers
	idx := len(w.content.Cookware)
	w.content.Cookware = append(w.content.Cookware, cw)
	return Item{Kind: ItemComponent, ComponentKind: ComponentCookware, ComponentIndex: idx}, true
}

func (w *walker) resolveTimer(loc span.Located[ast.Component]) (Item, bool) {
	t := loc.Value.Timer
	sp := loc.Span

	var qty *quantity.Quantity
	if t.Quantity != nil {
		q := w.lowerQuantity(*t.Quantity, false, sp)
		qty = &q

		if w.opts.Extensions.Has(extensions.AdvancedUnits) && w.opts.Registry != nil && t.Quantity.Unit != nil {
			info := q.Unit.Resolve(w.opts.Registry)
			switch info.Kind {
			case quantity.UnitKnown:
				if info.Unit.PhysicalQuantity != convert.Time {
					w.ctx.Error(diag.Error{Kind: "BadTimerUnit", Message: "timer unit is not a unit of time", Span: t.Quantity.Unit.Span})
				}
			case quantity.UnitUnknown:
				w.ctx.Error(diag.Error{Kind: "UnknownTimerUnit", Message: "unknown timer unit", Span: t.Quantity.Unit.Span})
			}
		}
	}

	tm := Timer{Name: textPtr(t.Name), Quantity: qty, Span: sp}
	idx := len(w.content.Timers)
	w.content.Timers = append(w.content.Timers, tm)
	return Item{Kind: ItemComponent, ComponentKind: ComponentTimer, ComponentIndex: idx}, true
}

// lowerQuantity lowers an AST quantity to the model's QuantityValue, then
// applies the auto_scale_ingredients flag (ingredients only).
func (w *walker) lowerQuantity(q ast.Quantity, isIngredient bool, sp span.Span) quantity.Quantity {
	var unit *quantity.QuantityUnit
	if q.Unit != nil {
		unit = quantity.NewQuantityUnit(q.Unit.Value)
	}

	var qv quantity.QuantityValue
	switch q.Value.Kind {
	case ast.QVSingle:
		v := lowerValue(q.Value.Value.Value)
		if q.Value.AutoScale != nil {
			if v.Kind == quantity.Text {
				w.ctx.Error(diag.Error{Kind: "TextValueScaled", Message: "a text quantity value cannot be auto-scaled", Span: sp})
				qv = quantity.FixedValue(v)
			} else {
				qv = quantity.LinearValueOf(v)
			}
		} else {
			qv = quantity.FixedValue(v)
		}
	default: // ast.QVMany
		vals := make([]quantity.Value, len(q.Value.Values))
		for i, lv := range q.Value.Values {
			vals[i] = lowerValue(lv.Value)
		}
		if len(w.servings) == 0 {
			w.ctx.Error(diag.Error{Kind: "MissingServingsMetadata", Message: "a multi-value quantity requires servings metadata", Span: sp})
		} else if len(w.servings) != len(vals) {
			w.ctx.Error(diag.Error{Kind: "ScalableValueManyConflict", Message: fmt.Sprintf("quantity has %d values but servings declares %d", len(vals), len(w.servings)), Span: sp})
		}
		qv = quantity.ByServingsValues(vals)
	}

	if isIngredient && w.autoScaleIngredients {
		switch qv.Kind {
		case quantity.Fixed:
			if qv.FixedValue.Kind != quantity.Text {
				qv = quantity.LinearValueOf(qv.FixedValue)
			}
		case quantity.Linear:
			w.ctx.Warn(diag.Warning{Kind: "RedundantAutoScale", Message: "quantity is already auto-scaled", Span: sp})
		}
	}

	return quantity.NewQuantity(qv, unit)
}

func lowerValue(v ast.Value) quantity.Value {
	switch v.Kind {
	case ast.ValueNumber:
		return quantity.NumberValue(v.Number)
	case ast.ValueRange:
		return quantity.RangeValue(v.Range[0], v.Range[1])
	default:
		return quantity.TextValue(v.Text)
	}
}
