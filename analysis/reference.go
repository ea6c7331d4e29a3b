package analysis

import (
	"strings"

	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/diag"
	"github.com/cooklang/cooklang/metadata"
	"github.com/cooklang/cooklang/span"
)

// refComponent is the small capability interface the generic reference
// resolver needs from either an Ingredient or a Cookware: its name, its
// current modifiers, and whether it is itself a definition (as opposed to
// an existing reference, which can never be a resolution target).
type refComponent interface {
	refName() string
	refModifiers() ast.Modifiers
	refIsDefinition() bool
}

func (i Ingredient) refName() string             { return i.Name }
func (i Ingredient) refModifiers() ast.Modifiers { return i.Modifiers }
func (i Ingredient) refIsDefinition() bool       { return i.Relation.Kind == RelationDefinition }

func (c Cookware) refName() string             { return c.Name }
func (c Cookware) refModifiers() ast.Modifiers { return c.Modifiers }
func (c Cookware) refIsDefinition() bool       { return c.Relation.Kind == RelationDefinition }

// referenceDecision is what the generic resolver computes before any
// component-kind-specific constraints (note/quantity-clash/unit
// compatibility/recipe-existence) are applied.
type referenceDecision struct {
	IsReference bool
	TargetIndex int
	Implicit    bool
	Modifiers   ast.Modifiers // the new component's modifiers, possibly augmented with inherited bits
}

// resolveReference implements §4.3.2's algorithm, generic over ingredient
// and cookware via the small refComponent capability interface.
func resolveReference[C refComponent](
	existing []C,
	newName string,
	newMods ast.Modifiers,
	inheritMask ast.Modifiers,
	duplicateMode metadata.DuplicateMode,
	defineMode metadata.DefineMode,
	ctx *diag.Context,
	sp span.Span,
) (referenceDecision, bool) {
	target := strings.ToLower(strings.TrimSpace(newName))
	sameNamePos := -1
	for i := len(existing) - 1; i >= 0; i-- {
		if existing[i].refIsDefinition() && strings.ToLower(strings.TrimSpace(existing[i].refName())) == target {
			sameNamePos = i
			break
		}
	}
	sameNameFound := sameNamePos >= 0

	hadRef := newMods.Has(ast.ModRef)
	hadNew := newMods.Has(ast.ModNew)

	if hadRef && !hadNew && (duplicateMode == metadata.DuplicateReference || defineMode == metadata.DefineSteps) {
		ctx.Warn(diag.Warning{Kind: "RedundantReferenceModifier", Message: "'&' is redundant here", Span: sp})
	}

	if hadRef && hadNew {
		ctx.Error(diag.Error{Kind: "ConflictingModifiers", Message: "a component cannot be both a reference ('&') and new ('+')", Span: sp})
		return referenceDecision{}, false
	}

	treatAsReference := !hadNew && (hadRef || defineMode == metadata.DefineSteps || (sameNameFound && duplicateMode == metadata.DuplicateReference))
	if !treatAsReference {
		return referenceDecision{IsReference: false, Modifiers: newMods}, true
	}

	if !sameNameFound {
		ctx.Error(diag.Error{Kind: "ReferenceNotFound", Message: "no earlier definition named " + newName, Span: sp})
		return referenceDecision{}, false
	}

	def := existing[sameNamePos]
	inherited := def.refModifiers() & inheritMask
	implicit := !hadRef

	mods := newMods | inherited | ast.ModRef
	conflict := (mods &^ inherited &^ ast.ModRef) | (mods & ast.ModNew)
	if conflict != 0 {
		ctx.Error(diag.Error{Kind: "ConflictingModifiers", Message: "reference carries modifiers incompatible with its definition", Span: sp})
	}

	return referenceDecision{IsReference: true, TargetIndex: sameNamePos, Implicit: implicit, Modifiers: mods}, true
}
