package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	gram := Unit{Names: []string{"gram"}, Symbols: []string{"g"}, Ratio: 1, PhysicalQuantity: Mass}
	kilogram := Unit{Names: []string{"kilogram"}, Symbols: []string{"kg"}, Ratio: 1000, PhysicalQuantity: Mass}
	celsius := Unit{Names: []string{"celsius"}, Symbols: []string{"°C", "C"}, Ratio: 1, PhysicalQuantity: Temperature}
	minute := Unit{Names: []string{"minute"}, Symbols: []string{"min"}, Ratio: 60, PhysicalQuantity: Time}
	second := Unit{Names: []string{"second"}, Symbols: []string{"s"}, Ratio: 1, PhysicalQuantity: Time}

	units := []Unit{gram, kilogram, celsius, minute, second}
	best := map[PhysicalQuantity]BestConversionsStore{
		Mass: UnifiedBest(BestConversions{
			{Threshold: 0, UnitIndex: 0},
			{Threshold: 1000, UnitIndex: 1},
		}),
	}
	return NewRegistry(units, best, Metric)
}

func TestConvertToUnit(t *testing.T) {
	reg := testRegistry(t)
	g, err := reg.GetUnit("g")
	require.NoError(t, err)
	kg, err := reg.GetUnit("kg")
	require.NoError(t, err)

	converted, err := reg.ConvertToUnit(NumberValue(2000), g, kg)
	require.NoError(t, err)
	require.Equal(t, 2.0, converted.Number)
}

func TestConvertToUnitMismatchedPhysicalQuantity(t *testing.T) {
	reg := testRegistry(t)
	g, _ := reg.GetUnit("g")
	minute, _ := reg.GetUnit("min")

	_, err := reg.ConvertToUnit(NumberValue(1), g, minute)
	require.Error(t, err)
	var ce *ConvertError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, ErrMixedPhysicalQuantity, ce.Kind)
}

func TestBestUnitSelection(t *testing.T) {
	tests := []struct {
		name    string
		grams   float64
		wantSym string
	}{
		{"small amount stays in grams", 500, "g"},
		{"large amount promotes to kilograms", 2500, "kg"},
		{"exact threshold promotes", 1000, "kg"},
	}

	reg := testRegistry(t)
	g, _ := reg.GetUnit("g")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, ok := reg.BestUnitFor(NumberValue(tt.grams), g, Metric)
			require.True(t, ok)
			require.Equal(t, tt.wantSym, best.Symbol())
		})
	}
}

func TestConvertInverse(t *testing.T) {
	reg := testRegistry(t)
	g, _ := reg.GetUnit("g")
	kg, _ := reg.GetUnit("kg")

	original := NumberValue(750)
	toKg, err := reg.ConvertToUnit(original, g, kg)
	require.NoError(t, err)
	back, err := reg.ConvertToUnit(toKg, kg, g)
	require.NoError(t, err)
	require.InDelta(t, original.Number, back.Number, 1e-9)
}

func TestTemperatureRegexCachesOnce(t *testing.T) {
	reg := testRegistry(t)
	re1, err := reg.TemperatureRegex()
	require.NoError(t, err)
	re2, err := reg.TemperatureRegex()
	require.NoError(t, err)
	require.Same(t, re1, re2)

	match := re1.FindStringSubmatch("Bake at 180°C for a while")
	require.NotNil(t, match)
	require.Equal(t, "180", match[1])
}

func TestUnknownUnit(t *testing.T) {
	reg := testRegistry(t)
	_, err := reg.GetUnit("furlong")
	require.Error(t, err)
	var ue *UnknownUnitError
	require.ErrorAs(t, err, &ue)
}
