// Package diag implements the diagnostics accumulation pattern shared by the
// parser and analyzer: every pass collects errors and warnings as it goes
// rather than aborting on the first problem, and yields its final value only
// when no errors were recorded.
package diag

import (
	"fmt"

	"github.com/cooklang/cooklang/span"
)

// Code tags which pass produced a diagnostic.
type Code string

const (
	CodeParser   Code = "parser"
	CodeAnalysis Code = "analysis"
)

// Label is a secondary span annotation attached to a diagnostic, e.g.
// pointing at both the definition and the reference in a conflict.
type Label struct {
	Span    span.Span
	Message string
}

// Error is a diagnostic severe enough to suppress the pass's final value.
type Error struct {
	Code    Code
	Kind    string // short machine-stable identifier, e.g. "ReferenceNotFound"
	Message string
	Span    span.Span
	Labels  []Label
	Help    string
	Note    string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Message, e.Span)
}

// Warning is an informational diagnostic that never blocks the pass's
// output.
type Warning struct {
	Code    Code
	Kind    string
	Message string
	Span    span.Span
	Labels  []Label
	Help    string
	Note    string
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: %s (at %s)", w.Kind, w.Message, w.Span)
}

// Context accumulates diagnostics for one pass (or one speculative
// sub-parse). The zero value is ready to use.
type Context struct {
	code     Code
	Errors   []Error
	Warnings []Warning
}

// NewContext returns a Context tagging every diagnostic it accumulates with
// code, unless the diagnostic already carries an explicit Code.
func NewContext(code Code) *Context {
	return &Context{code: code}
}

// Error records e, defaulting its Code if unset.
func (c *Context) Error(e Error) {
	if e.Code == "" {
		e.Code = c.code
	}
	c.Errors = append(c.Errors, e)
}

// Warn records w, defaulting its Code if unset.
func (c *Context) Warn(w Warning) {
	if w.Code == "" {
		w.Code = c.code
	}
	c.Warnings = append(c.Warnings, w)
}

// HasErrors reports whether any error has been recorded.
func (c *Context) HasErrors() bool {
	return len(c.Errors) > 0
}

// Finish returns value together with ok, which is true only if no errors
// were recorded. The value is returned in both cases so a caller that wants to keep
// going opportunistically (as the analyzer does across lines) may do so.
func Finish[T any](c *Context, value T) (result T, ok bool) {
	return value, !c.HasErrors()
}

// Merge appends other's diagnostics into c, e.g. folding a sub-parser's
// context into its parent's once the sub-parse concludes.
func (c *Context) Merge(other *Context) {
	c.Errors = append(c.Errors, other.Errors...)
	c.Warnings = append(c.Warnings, other.Warnings...)
}
