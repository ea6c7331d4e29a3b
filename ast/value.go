package ast

import (
	"fmt"

	"github.com/cooklang/cooklang/span"
)

// ValueKind tags which variant a Value holds.
type ValueKind int

const (
	ValueNumber ValueKind = iota
	ValueRange
	ValueText
)

// Value is a single parsed quantity value: a number, an inclusive range, or
// free text (for quantities like "a pinch").
type Value struct {
	Kind   ValueKind
	Number float64
	Range  [2]float64 // [start, end], inclusive, only when Kind == ValueRange
	Text   string      // only when Kind == ValueText
}

func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Number: n} }
func RangeValue(start, end float64) Value {
	return Value{Kind: ValueRange, Range: [2]float64{start, end}}
}
func TextValue(s string) Value { return Value{Kind: ValueText, Text: s} }

func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return formatNumber(v.Number)
	case ValueRange:
		return formatNumber(v.Range[0]) + "-" + formatNumber(v.Range[1])
	case ValueText:
		return v.Text
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	return fmt.Sprintf("%g", f)
}

// QuantityValueKind tags which variant a QuantityValue holds.
type QuantityValueKind int

const (
	// QVSingle is one value, optionally marked for auto-scaling with '*'.
	QVSingle QuantityValueKind = iota
	// QVMany is multiple '|'-separated values, one per declared serving
	// count.
	QVMany
)

// QuantityValue is the AST-level value of a quantity: either a single
// (possibly auto-scaled) value or a list of per-serving values.
type QuantityValue struct {
	Kind QuantityValueKind

	// Single fields.
	Value     span.Located[Value]
	AutoScale *span.Span // non-nil when '*' was present

	// Many fields.
	Values []span.Located[Value]
}

func SingleValue(v span.Located[Value], autoScale *span.Span) QuantityValue {
	return QuantityValue{Kind: QVSingle, Value: v, AutoScale: autoScale}
}

func ManyValues(vs []span.Located[Value]) QuantityValue {
	return QuantityValue{Kind: QVMany, Values: vs}
}
