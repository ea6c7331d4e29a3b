package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/diag"
	"github.com/cooklang/cooklang/span"
)

func withNumberedSteps(n int) Section {
	var steps []Step
	for i := 0; i < n; i++ {
		idx := i
		steps = append(steps, Step{Number: &idx})
	}
	return Section{Steps: steps}
}

func TestResolveIntermediateStepRelative(t *testing.T) {
	ctx := diag.NewContext(diag.CodeAnalysis)
	sec := withNumberedSteps(3)
	rel, ok := resolveIntermediateRef(ast.IntermediateData{TargetKind: ast.IntermediateStep, RefMode: ast.RefRelative, Val: 1}, sec, 0, ctx, span.Point(0))
	require.True(t, ok)
	require.Empty(t, ctx.Errors)
	require.Equal(t, RelationReference, rel.Kind)
	require.Equal(t, TargetStep, rel.TargetKind)
	require.Equal(t, 2, rel.Index)
}

func TestResolveIntermediateStepRelativeSkipsTextSteps(t *testing.T) {
	ctx := diag.NewContext(diag.CodeAnalysis)
	sec := withNumberedSteps(2)
	sec.Steps = append(sec.Steps, Step{Number: nil}) // trailing text step, doesn't count
	rel, ok := resolveIntermediateRef(ast.IntermediateData{TargetKind: ast.IntermediateStep, RefMode: ast.RefRelative, Val: 1}, sec, 0, ctx, span.Point(0))
	require.True(t, ok)
	require.Equal(t, 1, rel.Index)
}

func TestResolveIntermediateStepRelativeOutOfBounds(t *testing.T) {
	ctx := diag.NewContext(diag.CodeAnalysis)
	sec := withNumberedSteps(1)
	_, ok := resolveIntermediateRef(ast.IntermediateData{TargetKind: ast.IntermediateStep, RefMode: ast.RefRelative, Val: 5}, sec, 0, ctx, span.Point(0))
	require.False(t, ok)
	require.NotEmpty(t, ctx.Errors)
}

func TestResolveIntermediateStepRelativeNonPositive(t *testing.T) {
	ctx := diag.NewContext(diag.CodeAnalysis)
	sec := withNumberedSteps(2)
	_, ok := resolveIntermediateRef(ast.IntermediateData{TargetKind: ast.IntermediateStep, RefMode: ast.RefRelative, Val: 0}, sec, 0, ctx, span.Point(0))
	require.False(t, ok)
}

func TestResolveIntermediateStepIndex(t *testing.T) {
	ctx := diag.NewContext(diag.CodeAnalysis)
	sec := withNumberedSteps(3)
	rel, ok := resolveIntermediateRef(ast.IntermediateData{TargetKind: ast.IntermediateStep, RefMode: ast.RefIndex, Val: 1}, sec, 0, ctx, span.Point(0))
	require.True(t, ok)
	require.Equal(t, 1, rel.Index)

	_, ok = resolveIntermediateRef(ast.IntermediateData{TargetKind: ast.IntermediateStep, RefMode: ast.RefIndex, Val: 3}, sec, 0, ctx, span.Point(0))
	require.False(t, ok)
}

func TestResolveIntermediateSectionIndex(t *testing.T) {
	ctx := diag.NewContext(diag.CodeAnalysis)
	rel, ok := resolveIntermediateRef(ast.IntermediateData{TargetKind: ast.IntermediateSection, RefMode: ast.RefIndex, Val: 1}, Section{}, 3, ctx, span.Point(0))
	require.True(t, ok)
	require.Equal(t, TargetSection, rel.TargetKind)
	require.Equal(t, 1, rel.Index)

	_, ok = resolveIntermediateRef(ast.IntermediateData{TargetKind: ast.IntermediateSection, RefMode: ast.RefIndex, Val: 3}, Section{}, 3, ctx, span.Point(0))
	require.False(t, ok)
}

func TestResolveIntermediateSectionRelative(t *testing.T) {
	ctx := diag.NewContext(diag.CodeAnalysis)
	rel, ok := resolveIntermediateRef(ast.IntermediateData{TargetKind: ast.IntermediateSection, RefMode: ast.RefRelative, Val: 1}, Section{}, 3, ctx, span.Point(0))
	require.True(t, ok)
	require.Equal(t, 2, rel.Index)

	_, ok = resolveIntermediateRef(ast.IntermediateData{TargetKind: ast.IntermediateSection, RefMode: ast.RefRelative, Val: 4}, Section{}, 3, ctx, span.Point(0))
	require.False(t, ok)
}
