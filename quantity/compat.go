package quantity

import (
	"fmt"
	"strings"

	"github.com/cooklang/cooklang/convert"
)

// CompatibilityErrorKind taxonomizes why two quantities' units could not be
// compared for addition.
type CompatibilityErrorKind string

const (
	ErrOneMissingUnit       CompatibilityErrorKind = "OneMissingUnit"
	ErrDifferentPhysicalQty CompatibilityErrorKind = "DifferentPhysicalQuantity"
	ErrDifferentUnknownText CompatibilityErrorKind = "DifferentUnknownUnitText"
)

type CompatibilityError struct {
	Kind CompatibilityErrorKind
	Msg  string
}

func (e *CompatibilityError) Error() string { return e.Msg }

// CompatibleUnit reports whether a and b's units permit addition: both
// missing a unit is fine (nil, nil error); exactly one missing is an error;
// both known requires the same physical quantity; both unknown requires
// identical trimmed unit text.
func CompatibleUnit(reg *convert.Registry, a, b *QuantityUnit) error {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return &CompatibilityError{Kind: ErrOneMissingUnit, Msg: "cannot add a quantity with a unit to one without"}
	}
	infoA := a.Resolve(reg)
	infoB := b.Resolve(reg)
	if infoA.Kind == UnitKnown && infoB.Kind == UnitKnown {
		if infoA.Unit.PhysicalQuantity != infoB.Unit.PhysicalQuantity {
			return &CompatibilityError{
				Kind: ErrDifferentPhysicalQty,
				Msg:  fmt.Sprintf("cannot add %s (%s) to %s (%s)", a.Text(), infoA.Unit.PhysicalQuantity, b.Text(), infoB.Unit.PhysicalQuantity),
			}
		}
		return nil
	}
	if infoA.Kind == UnitUnknown && infoB.Kind == UnitUnknown {
		if strings.TrimSpace(a.Text()) != strings.TrimSpace(b.Text()) {
			return &CompatibilityError{
				Kind: ErrDifferentUnknownText,
				Msg:  fmt.Sprintf("cannot add unknown units %q and %q", a.Text(), b.Text()),
			}
		}
		return nil
	}
	return &CompatibilityError{
		Kind: ErrDifferentPhysicalQty,
		Msg:  fmt.Sprintf("cannot add known unit %q to unknown unit %q", a.Text(), b.Text()),
	}
}

// TryAddQuantities verifies a and b's units are compatible, converts b into
// a's unit if both are known and differ, then sums the values. Scalable
// (Linear/ByServings) values are rejected by QuantityValue.TryAdd.
func TryAddQuantities(reg *convert.Registry, a, b Quantity) (Quantity, error) {
	if err := CompatibleUnit(reg, a.Unit, b.Unit); err != nil {
		return Quantity{}, err
	}

	bValue := b.Value
	if a.Unit != nil && b.Unit != nil {
		infoA := a.Unit.Resolve(reg)
		infoB := b.Unit.Resolve(reg)
		if infoA.Kind == UnitKnown && infoB.Kind == UnitKnown && infoA.Unit.Symbol() != infoB.Unit.Symbol() {
			converted, err := convertQuantityValue(reg, bValue, infoB.Unit, infoA.Unit)
			if err != nil {
				return Quantity{}, err
			}
			bValue = converted
		}
	}

	sum, err := a.Value.TryAdd(bValue)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: sum, Unit: a.Unit}, nil
}

// convertQuantityValue converts a Fixed QuantityValue's inner Value between
// two known units; scalable values cannot be converted without first being
// scaled.
func convertQuantityValue(reg *convert.Registry, qv QuantityValue, from, to convert.Unit) (QuantityValue, error) {
	if qv.Kind != Fixed {
		return QuantityValue{}, &NotScaledError{Kind: qv.Kind}
	}
	v := qv.FixedValue
	if v.Kind == Text {
		return QuantityValue{}, &AddError{Kind: AddErrTextOperand, Msg: "cannot convert a text quantity value"}
	}
	cv := toConvertValue(v)
	converted, err := reg.ConvertToUnit(cv, from, to)
	if err != nil {
		return QuantityValue{}, err
	}
	return FixedValue(fromConvertValue(converted)), nil
}

func toConvertValue(v Value) convert.Value {
	if v.Kind == Range {
		return convert.RangeValue(v.RangeStart, v.RangeEnd)
	}
	return convert.NumberValue(v.Num)
}

func fromConvertValue(cv convert.Value) Value {
	if cv.IsRange {
		return RangeValue(cv.Range[0], cv.Range[1])
	}
	return NumberValue(cv.Number)
}

// Fit converts q into the best-matching unit within its own unit's system,
// if the unit is known. Unitless or unknown-unit quantities are returned
// unchanged.
func Fit(reg *convert.Registry, q Quantity) (Quantity, error) {
	if q.Unit == nil {
		return q, nil
	}
	info := q.Unit.Resolve(reg)
	if info.Kind != UnitKnown {
		return q, nil
	}
	if q.Value.Kind != Fixed {
		return q, nil
	}
	cv := toConvertValue(q.Value.FixedValue)
	converted, toUnit, err := reg.Fit(cv, info.Unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{
		Value: FixedValue(fromConvertValue(converted)),
		Unit:  NewQuantityUnit(toUnit.Symbol()),
	}, nil
}

// Convert converts q to the target described by to, using reg.
func Convert(reg *convert.Registry, q Quantity, to convert.To) (Quantity, error) {
	if q.Unit == nil {
		return Quantity{}, fmt.Errorf("quantity: cannot convert a unitless quantity")
	}
	if q.Value.Kind != Fixed {
		return Quantity{}, fmt.Errorf("quantity: cannot convert a scalable (unscaled) quantity value")
	}
	if q.Value.FixedValue.Kind == Text {
		return Quantity{}, fmt.Errorf("quantity: cannot convert a text quantity value")
	}
	info := q.Unit.Resolve(reg)
	if info.Kind != UnitKnown {
		return Quantity{}, fmt.Errorf("quantity: cannot convert unknown unit %q", q.Unit.Text())
	}
	cv := toConvertValue(q.Value.FixedValue)
	converted, toUnit, err := reg.Convert(cv, info.Unit, to)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{
		Value: FixedValue(fromConvertValue(converted)),
		Unit:  NewQuantityUnit(toUnit.Symbol()),
	}, nil
}
