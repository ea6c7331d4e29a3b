package ast

import "github.com/cooklang/cooklang/span"

// Quantity is the AST-level value+unit pair parsed out of a component's
// braces. Unit is raw text at this stage; the analyzer resolves it against
// the converter.
type Quantity struct {
	Value QuantityValue
	Unit  *span.Located[string]
}

// RecoverQuantity returns a reasonable placeholder Quantity for use when parsing
// fails partway through but the caller wants to keep walking tokens.
func RecoverQuantity(at int) Quantity {
	return Quantity{
		Value: SingleValue(span.At(TextValue(""), span.Point(at)), nil),
	}
}
