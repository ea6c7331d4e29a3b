// Package quantity implements the recipe model's value+unit arithmetic:
// fixed/linear/by-servings quantity values, lazily-resolved units, and
// grouped aggregation for totals.
package quantity

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/cooklang/cooklang/convert"
)

// ValueKind tags which variant a Value holds.
type ValueKind int

const (
	Number ValueKind = iota
	Range
	Text
)

// Value is a resolved quantity value: a number, an inclusive range, or free
// text. Unlike ast.Value this is the model-layer type values end up as
// after analysis; the two are structurally identical but kept separate so
// the AST and model packages do not need to import one another.
type Value struct {
	Kind       ValueKind
	Num        float64
	RangeStart float64
	RangeEnd   float64
	Txt        string
}

func NumberValue(n float64) Value          { return Value{Kind: Number, Num: n} }
func RangeValue(start, end float64) Value  { return Value{Kind: Range, RangeStart: start, RangeEnd: end} }
func TextValue(s string) Value             { return Value{Kind: Text, Txt: s} }

// String renders the value, rounding numeric components to 3 decimal
// places and trimming trailing zeros.
func (v Value) String() string {
	switch v.Kind {
	case Number:
		return formatRounded(v.Num)
	case Range:
		return formatRounded(v.RangeStart) + "-" + formatRounded(v.RangeEnd)
	case Text:
		return v.Txt
	default:
		return ""
	}
}

func formatRounded(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// AddErrorKind taxonomizes why two values could not be added.
type AddErrorKind string

const (
	AddErrTextOperand AddErrorKind = "TextOperand"
)

type AddError struct {
	Kind AddErrorKind
	Msg  string
}

func (e *AddError) Error() string { return e.Msg }

// TryAdd adds two values: number+number, number+range, range+range. Either
// operand being Text is an error, since text values carry no quantity to
// combine.
func (v Value) TryAdd(other Value) (Value, error) {
	if v.Kind == Text || other.Kind == Text {
		return Value{}, &AddError{Kind: AddErrTextOperand, Msg: "cannot add a text quantity value"}
	}
	if v.Kind == Number && other.Kind == Number {
		return NumberValue(v.Num + other.Num), nil
	}
	if v.Kind == Range && other.Kind == Range {
		return RangeValue(v.RangeStart+other.RangeStart, v.RangeEnd+other.RangeEnd), nil
	}
	// One side is a number, the other a range: broadcast the number.
	if v.Kind == Number && other.Kind == Range {
		return RangeValue(v.Num+other.RangeStart, v.Num+other.RangeEnd), nil
	}
	return RangeValue(v.RangeStart+other.Num, v.RangeEnd+other.Num), nil
}

// UnitInfoKind tags whether a QuantityUnit resolved to a registry unit.
type UnitInfoKind int

const (
	UnitUnknown UnitInfoKind = iota
	UnitKnown
)

// UnitInfo is the lazily-computed resolution of a unit's text against the
// registry.
type UnitInfo struct {
	Kind UnitInfoKind
	Unit convert.Unit
}

// QuantityUnit is the unit half of a Quantity: raw text plus a one-shot
// cache of its resolution against a registry. The cache uses sync.Once so a
// QuantityUnit shared (by reference) across concurrent readers is safe
// after its first touch, per the one-shot-field requirement on the
// registry's own temperature regex.
type QuantityUnit struct {
	text string

	once sync.Once
	info UnitInfo
}

func NewQuantityUnit(text string) *QuantityUnit {
	return &QuantityUnit{text: text}
}

func (u *QuantityUnit) Text() string {
	return u.text
}

// Resolve returns the unit's UnitInfo, computing and caching it against reg
// on first call.
func (u *QuantityUnit) Resolve(reg *convert.Registry) UnitInfo {
	u.once.Do(func() {
		unit, err := reg.GetUnit(u.text)
		if err != nil {
			u.info = UnitInfo{Kind: UnitUnknown}
			return
		}
		u.info = UnitInfo{Kind: UnitKnown, Unit: unit}
	})
	return u.info
}

func (u *QuantityUnit) String() string {
	return u.text
}

// QuantityValueKind tags which variant a QuantityValue holds.
type QuantityValueKind int

const (
	Fixed QuantityValueKind = iota
	Linear
	ByServings
)

// NotScaledError is returned when trying to add a scalable (Linear or
// ByServings) quantity value: it must be scaled to a concrete number by an
// external step first.
type NotScaledError struct {
	Kind QuantityValueKind
}

func (e *NotScaledError) Error() string {
	return fmt.Sprintf("quantity value is not scaled (kind=%d) and cannot be added directly", e.Kind)
}

// QuantityValue is the model-level value of a quantity.
type QuantityValue struct {
	Kind         QuantityValueKind
	FixedValue   Value
	LinearValue  Value
	ServingsVals []Value
}

func FixedValue(v Value) QuantityValue          { return QuantityValue{Kind: Fixed, FixedValue: v} }
func LinearValueOf(v Value) QuantityValue       { return QuantityValue{Kind: Linear, LinearValue: v} }
func ByServingsValues(vs []Value) QuantityValue { return QuantityValue{Kind: ByServings, ServingsVals: vs} }

// TryAdd adds two quantity values. Only Fixed values are addable; Linear
// and ByServings must be scaled first.
func (qv QuantityValue) TryAdd(other QuantityValue) (QuantityValue, error) {
	if qv.Kind != Fixed {
		return QuantityValue{}, &NotScaledError{Kind: qv.Kind}
	}
	if other.Kind != Fixed {
		return QuantityValue{}, &NotScaledError{Kind: other.Kind}
	}
	sum, err := qv.FixedValue.TryAdd(other.FixedValue)
	if err != nil {
		return QuantityValue{}, err
	}
	return FixedValue(sum), nil
}

func (qv QuantityValue) String() string {
	switch qv.Kind {
	case Fixed:
		return qv.FixedValue.String()
	case Linear:
		return qv.LinearValue.String() + "*"
	case ByServings:
		parts := make([]string, len(qv.ServingsVals))
		for i, v := range qv.ServingsVals {
			parts[i] = v.String()
		}
		return strings.Join(parts, "|")
	default:
		return ""
	}
}

// Quantity is a value paired with an optional unit.
type Quantity struct {
	Value QuantityValue
	Unit  *QuantityUnit // nil if unitless
}

func NewQuantity(v QuantityValue, unit *QuantityUnit) Quantity {
	return Quantity{Value: v, Unit: unit}
}
