package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cooklang/cooklang/ast"
	"github.com/cooklang/cooklang/convert"
	"github.com/cooklang/cooklang/extensions"
	"github.com/cooklang/cooklang/metadata"
	"github.com/cooklang/cooklang/parser"
	"github.com/cooklang/cooklang/quantity"
)

func testRegistry() *convert.Registry {
	minute := convert.Unit{Names: []string{"minute", "minutes"}, Symbols: []string{"min"}, Ratio: 1, PhysicalQuantity: convert.Time}
	gram := convert.Unit{Names: []string{"gram", "grams"}, Symbols: []string{"g"}, Ratio: 1, PhysicalQuantity: convert.Mass}
	kilogram := convert.Unit{Names: []string{"kilogram"}, Symbols: []string{"kg"}, Ratio: 1000, PhysicalQuantity: convert.Mass}
	celsius := convert.Unit{Names: []string{"celsius"}, Symbols: []string{"°C", "C"}, Ratio: 1, PhysicalQuantity: convert.Temperature}
	return convert.NewRegistry([]convert.Unit{minute, gram, kilogram, celsius}, nil, convert.Metric)
}

func analyzeSource(t *testing.T, src string, ext extensions.Extensions) Result {
	t.Helper()
	res := parser.Parse(src, ext)
	require.Empty(t, res.Errors, "parse errors: %v", res.Errors)
	fm := map[string]string{}
	if res.HasFrontMatter {
		decoded, err := metadata.DecodeFrontMatter(res.FrontMatter)
		require.NoError(t, err)
		fm = decoded
	}
	return Analyze(res.Ast, fm, Options{Extensions: ext, Registry: testRegistry()})
}

func TestScenarioSimpleIngredientStep(t *testing.T) {
	result := analyzeSource(t, "@salt{1%tsp}", extensions.None)
	require.Empty(t, result.Errors)
	require.Len(t, result.Content.Ingredients, 1)
	ing := result.Content.Ingredients[0]
	require.Equal(t, "salt", ing.Name)
	require.Equal(t, quantity.Fixed, ing.Quantity.Value.Kind)
	require.Equal(t, "tsp", ing.Quantity.Unit.Text())
	require.Equal(t, Modifiers(0), ing.Modifiers)

	require.Len(t, result.Content.Sections, 1)
	steps := result.Content.Sections[0].Steps
	require.Len(t, steps, 1)
	require.NotNil(t, steps[0].Number)
	require.Equal(t, 1, *steps[0].Number)
}

func TestScenarioReferenceToPriorDefinition(t *testing.T) {
	ext := extensions.ComponentModifiers | extensions.AdvancedUnits | extensions.ComponentNote
	result := analyzeSource(t, "@salt{1%tsp}\n@&salt{}", ext)
	require.Empty(t, result.Errors)
	require.Len(t, result.Content.Ingredients, 2)

	second := result.Content.Ingredients[1]
	require.True(t, second.Modifiers.Has(ast.ModRef))
	require.Equal(t, RelationReference, second.Relation.Kind)
	require.Equal(t, TargetIngredient, second.Relation.TargetKind)
	require.Equal(t, 0, second.Relation.Index)
	require.Nil(t, second.Quantity)

	first := result.Content.Ingredients[0]
	require.Equal(t, []int{1}, first.Relation.ReferencedFrom)
}

func TestScenarioComponentModeConflictingQuantities(t *testing.T) {
	ext := extensions.Modes | extensions.ComponentModifiers
	src := ">> [mode]: components\n@flour{200%g}\nmix it @flour{&}"
	result := analyzeSource(t, src, ext)

	require.Len(t, result.Content.Ingredients, 2)
	require.False(t, result.Content.Ingredients[0].DefinedInStep)

	var found bool
	for _, e := range result.Errors {
		if e.Kind == "ConflictingReferenceQuantities" {
			found = true
		}
	}
	require.True(t, found, "expected ConflictingReferenceQuantities, got %v", result.Errors)
}

func TestScenarioTimerKnownTimeUnit(t *testing.T) {
	ext := extensions.AdvancedUnits
	result := analyzeSource(t, "~{5%min}", ext)
	require.Empty(t, result.Errors)
	require.Len(t, result.Content.Timers, 1)
	tm := result.Content.Timers[0]
	require.Equal(t, "min", tm.Quantity.Unit.Text())
}

func TestScenarioTimerWrongUnitKindErrors(t *testing.T) {
	ext := extensions.AdvancedUnits
	result := analyzeSource(t, "~{5%kg}", ext)
	var found bool
	for _, e := range result.Errors {
		if e.Kind == "BadTimerUnit" {
			found = true
		}
	}
	require.True(t, found, "expected BadTimerUnit, got %v", result.Errors)
}

func TestScenarioServingsByServingsMatchingCardinality(t *testing.T) {
	src := ">> servings: 2|4\n@rice{100|200%g}"
	result := analyzeSource(t, src, extensions.None)
	require.Empty(t, result.Errors)
	ing := result.Content.Ingredients[0]
	require.Equal(t, quantity.ByServings, ing.Quantity.Value.Kind)
	require.Equal(t, []quantity.Value{quantity.NumberValue(100), quantity.NumberValue(200)}, ing.Quantity.Value.ServingsVals)
}

func TestScenarioServingsCardinalityMismatchErrors(t *testing.T) {
	src := ">> servings: 2\n@rice{100|200%g}"
	result := analyzeSource(t, src, extensions.None)
	var found bool
	for _, e := range result.Errors {
		if e.Kind == "ScalableValueManyConflict" {
			found = true
		}
	}
	require.True(t, found, "expected ScalableValueManyConflict, got %v", result.Errors)
}

func TestScenarioInlineTemperature(t *testing.T) {
	ext := extensions.Temperature
	result := analyzeSource(t, "Bake at 180C for a while", ext)
	require.Empty(t, result.Errors)
	require.Len(t, result.Content.InlineQuantities, 1)
	iq := result.Content.InlineQuantities[0]
	require.Equal(t, quantity.Fixed, iq.Quantity.Value.Kind)
	require.Equal(t, 180.0, iq.Quantity.Value.FixedValue.Num)

	steps := result.Content.Sections[0].Steps
	require.Len(t, steps, 1)
	items := steps[0].Items
	require.Len(t, items, 3)
	require.Equal(t, ItemText, items[0].Kind)
	require.Equal(t, "Bake at ", items[0].Text)
	require.Equal(t, ItemInlineQuantity, items[1].Kind)
	require.Equal(t, ItemText, items[2].Kind)
}

func TestStepNumbersAreContiguousPerSection(t *testing.T) {
	result := analyzeSource(t, "@a{1%g}\n@b{1%g}\n@c{1%g}", extensions.None)
	steps := result.Content.Sections[0].Steps
	require.Len(t, steps, 3)
	for i, s := range steps {
		require.Equal(t, i+1, *s.Number)
	}
}

func TestEmptySectionIsNotFlushed(t *testing.T) {
	result := analyzeSource(t, "= Intro =\n= Dough =\n@flour{200%g}", extensions.None)
	require.Len(t, result.Content.Sections, 1)
	require.NotNil(t, result.Content.Sections[0].Name)
	require.Equal(t, "Dough", *result.Content.Sections[0].Name)
}
