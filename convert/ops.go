package convert

import "fmt"

// Value is the payload a conversion operates over: either a single number
// or an inclusive range, both expressed in the "from" unit before
// conversion and in the "to" unit after. It intentionally mirrors only the
// numeric variants of the quantity model's richer Value type — text values
// are rejected before reaching this package.
type Value struct {
	IsRange bool
	Number  float64
	Range   [2]float64
}

func NumberValue(n float64) Value { return Value{Number: n} }
func RangeValue(start, end float64) Value {
	return Value{IsRange: true, Range: [2]float64{start, end}}
}

// Map applies f to every numeric component of v.
func (v Value) Map(f func(float64) float64) Value {
	if v.IsRange {
		return RangeValue(f(v.Range[0]), f(v.Range[1]))
	}
	return NumberValue(f(v.Number))
}

// Magnitude returns the value used for best-unit threshold comparisons:
// the absolute value of the number, or of the range start.
func (v Value) Magnitude() float64 {
	if v.IsRange {
		return absf(v.Range[0])
	}
	return absf(v.Number)
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// ToKind describes what a conversion should target.
type ToKind int

const (
	ToUnit ToKind = iota
	ToBest
	ToSameSystem
)

// To names a conversion target: an explicit unit key, the best unit in a
// given system, or the best unit within the source unit's own system.
type To struct {
	Kind ToKind
	Unit string // only when Kind == ToUnit
	Sys  System // only when Kind == ToBest
}

func ToUnitKey(key string) To    { return To{Kind: ToUnit, Unit: key} }
func ToBestInSystem(s System) To { return To{Kind: ToBest, Sys: s} }
func ToSameSystemTarget() To     { return To{Kind: ToSameSystem} }

// Error taxonomy for conversion failures.
type ErrorKind string

const (
	ErrMixedPhysicalQuantity ErrorKind = "MixedPhysicalQuantity"
	ErrNoBestConversions     ErrorKind = "NoBestConversions"
)

type ConvertError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ConvertError) Error() string { return e.Msg }

// affine converts a numeric magnitude from one unit's space to another's:
// norm = (v + from.Difference) * from.Ratio; result = norm / to.Ratio - to.Difference.
func affine(v float64, from, to Unit) float64 {
	norm := (v + from.Difference) * from.Ratio
	return norm/to.Ratio - to.Difference
}

// ConvertToUnit converts v from fromUnit's space into toUnit's, both of
// which must share a physical quantity.
func (r *Registry) ConvertToUnit(v Value, fromUnit, toUnit Unit) (Value, error) {
	if fromUnit.PhysicalQuantity != toUnit.PhysicalQuantity {
		return Value{}, &ConvertError{
			Kind: ErrMixedPhysicalQuantity,
			Msg:  fmt.Sprintf("cannot convert %s to %s: mismatched physical quantities (%s vs %s)", fromUnit.Symbol(), toUnit.Symbol(), fromUnit.PhysicalQuantity, toUnit.PhysicalQuantity),
		}
	}
	return v.Map(func(n float64) float64 { return affine(n, fromUnit, toUnit) }), nil
}

// BestUnitFor selects the preferred unit for v (expressed in baseUnit's
// space) within sys, per the physical quantity's best-conversion table. v is
// normalized through baseUnit's ratio and difference before it is compared
// against the table's thresholds. It returns ok=false if no table is
// configured for that physical quantity.
func (r *Registry) BestUnitFor(v Value, baseUnit Unit, sys System) (Unit, bool) {
	store, ok := r.bestConversions(baseUnit.PhysicalQuantity)
	if !ok {
		return Unit{}, false
	}
	table := store.forSystem(sys)
	norm := v.Map(func(n float64) float64 { return (n + baseUnit.Difference) * baseUnit.Ratio })
	idx, ok := table.bestUnit(norm.Magnitude())
	if !ok {
		return Unit{}, false
	}
	return r.units[idx], true
}

// Convert performs a full conversion of v (expressed in fromUnit) to the
// target described by to. It returns the converted value and the unit it is
// now expressed in.
func (r *Registry) Convert(v Value, fromUnit Unit, to To) (Value, Unit, error) {
	switch to.Kind {
	case ToUnit:
		toUnit, err := r.GetUnit(to.Unit)
		if err != nil {
			return Value{}, Unit{}, err
		}
		converted, err := r.ConvertToUnit(v, fromUnit, toUnit)
		return converted, toUnit, err
	case ToBest:
		best, ok := r.BestUnitFor(v, fromUnit, to.Sys)
		if !ok {
			return Value{}, Unit{}, &ConvertError{Kind: ErrNoBestConversions, Msg: fmt.Sprintf("no best-conversions table for %s", fromUnit.PhysicalQuantity)}
		}
		converted, err := r.ConvertToUnit(v, fromUnit, best)
		return converted, best, err
	case ToSameSystem:
		sys := r.defaultSystem
		if fromUnit.System != nil {
			sys = *fromUnit.System
		}
		return r.Convert(v, fromUnit, ToBestInSystem(sys))
	default:
		return Value{}, Unit{}, fmt.Errorf("convert: unknown target kind %d", to.Kind)
	}
}

// Fit converts v into the best unit within fromUnit's own system (or the
// registry default if the unit is system-agnostic).
func (r *Registry) Fit(v Value, fromUnit Unit) (Value, Unit, error) {
	return r.Convert(v, fromUnit, ToSameSystemTarget())
}
