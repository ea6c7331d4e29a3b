// Package analysis walks a parsed AST into a validated recipe model: it
// resolves references, lowers quantities against a unit registry, and
// accumulates the same two-tier diagnostics (errors/warnings) the parser
// uses.
package analysis

import (
	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/quantity"
	"github.com/cooklang/cooklang/span"
)

// Modifiers reuses the AST's bitset directly; the model layer needs no
// variant of its own.
type Modifiers = ast.Modifiers

// ItemKind tags which variant a resolved Item holds.
type ItemKind int

const (
	ItemText ItemKind = iota
	ItemInlineQuantity
	ItemComponent
)

// ComponentKind tags which list a resolved Item's Component points into.
type ComponentKind int

const (
	ComponentIngredient ComponentKind = iota
	ComponentCookware
	ComponentTimer
)

// Item is one resolved step element: literal text, a reference into the
// inline-quantities list, or a reference by kind+index into an ingredient,
// cookware, or timer list.
type Item struct {
	Kind           ItemKind
	Text           string
	InlineQuantity int
	ComponentKind  ComponentKind
	ComponentIndex int
}

// Step is an ordered run of items; Number is nil for text-only steps.
type Step struct {
	Items  []Item
	Number *int
}

// Section is an ordered run of steps, optionally named.
type Section struct {
	Name  *string
	Steps []Step
}

// RelationKind tags which variant an IngredientRelation/ComponentRelation
// holds.
type RelationKind int

const (
	RelationDefinition RelationKind = iota
	RelationReference
)

// ReferenceTargetKind names what an ingredient Reference relation points at.
type ReferenceTargetKind int

const (
	TargetIngredient ReferenceTargetKind = iota
	TargetStep
	TargetSection
)

// IngredientRelation is either a Definition (tracking who references it) or
// a Reference to a prior definition, step, or section.
type IngredientRelation struct {
	Kind           RelationKind
	ReferencedFrom []int // Definition
	TargetKind     ReferenceTargetKind
	Index          int // Reference
}

func NewDefinition() IngredientRelation {
	return IngredientRelation{Kind: RelationDefinition}
}

func NewIngredientReference(kind ReferenceTargetKind, index int) IngredientRelation {
	return IngredientRelation{Kind: RelationReference, TargetKind: kind, Index: index}
}

// ComponentRelation is cookware's simpler analogue: no intermediate
// reference kinds, always targeting another cookware definition.
type ComponentRelation struct {
	Kind           RelationKind
	ReferencedFrom []int
	Index          int
}

func NewComponentDefinition() ComponentRelation {
	return ComponentRelation{Kind: RelationDefinition}
}

func NewComponentReference(index int) ComponentRelation {
	return ComponentRelation{Kind: RelationReference, Index: index}
}

// Ingredient is the resolved model of an "@name{qty}(note)" component.
type Ingredient struct {
	Name          string
	Alias         *string
	Quantity      *quantity.Quantity
	Note          *string
	Modifiers     Modifiers
	Relation      IngredientRelation
	DefinedInStep bool
	Span          span.Span
}

// Cookware is the resolved model of a "#name{qty}(note)" component; it never
// carries a unit.
type Cookware struct {
	Name      string
	Alias     *string
	Quantity  *quantity.Quantity
	Note      *string
	Modifiers Modifiers
	Relation  ComponentRelation
	Span      span.Span
}

// Timer is the resolved model of a "~name{qty%unit}" component.
type Timer struct {
	Name     *string
	Quantity *quantity.Quantity
	Span     span.Span
}

// InlineQuantity is a quantity recognized mid-text via the temperature
// regex, e.g. "Bake at 180C".
type InlineQuantity struct {
	Quantity quantity.Quantity
	Span     span.Span
}

// RecipeContent is the final output of analysis: a fully resolved recipe.
type RecipeContent struct {
	Metadata         map[string]string
	Sections         []Section
	Ingredients      []Ingredient
	Cookware         []Cookware
	Timers           []Timer
	InlineQuantities []InlineQuantity
}
