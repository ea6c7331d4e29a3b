package analysis

import (
	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/diag"
	"github.com/cooklang/cooklang/span"
)

// resolveIntermediateRef implements §4.3.1: an ingredient whose reference
// target is a prior step or section rather than another ingredient.
// current is the section under construction (already containing every step
// pushed so far in this section); sectionsSoFar is the count of sections
// flushed before it.
func resolveIntermediateRef(
	data ast.IntermediateData,
	current Section,
	sectionsSoFar int,
	ctx *diag.Context,
	sp span.Span,
) (IngredientRelation, bool) {
	val := int(data.Val)

	switch data.TargetKind {
	case ast.IntermediateStep:
		switch data.RefMode {
		case ast.RefIndex:
			if val < len(current.Steps) {
				return NewIngredientReference(TargetStep, val), true
			}
			ctx.Error(diag.Error{Kind: "InvalidIntermediateReference", Message: "step index out of bounds", Span: sp})
			return IngredientRelation{}, false

		default: // RefRelative
			if val <= 0 {
				ctx.Error(diag.Error{Kind: "InvalidIntermediateReference", Message: "relative step reference must be positive", Span: sp})
				return IngredientRelation{}, false
			}
			remaining := val
			for i := len(current.Steps) - 1; i >= 0; i-- {
				if current.Steps[i].Number == nil {
					continue // text steps don't count
				}
				remaining--
				if remaining == 0 {
					return NewIngredientReference(TargetStep, i), true
				}
			}
			ctx.Error(diag.Error{Kind: "InvalidIntermediateReference", Message: "no such prior step", Span: sp})
			return IngredientRelation{}, false
		}

	default: // ast.IntermediateSection
		switch data.RefMode {
		case ast.RefIndex:
			if val < sectionsSoFar {
				return NewIngredientReference(TargetSection, val), true
			}
			ctx.Error(diag.Error{Kind: "InvalidIntermediateReference", Message: "section index out of bounds", Span: sp})
			return IngredientRelation{}, false

		default: // RefRelative
			if val <= sectionsSoFar {
				return NewIngredientReference(TargetSection, sectionsSoFar-val), true
			}
			ctx.Error(diag.Error{Kind: "InvalidIntermediateReference", Message: "no such prior section", Span: sp})
			return IngredientRelation{}, false
		}
	}
}
