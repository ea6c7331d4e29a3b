// Package cooklang ties the parser and analyzer into a single entry point
// for callers that don't need to inspect the intermediate AST.
package cooklang

import (
	"fmt"
	"strings"

	"github.com/cooklang/cooklang/analysis"
	"github.com/cooklang/cooklang/convert"
	"github.com/cooklang/cooklang/extensions"
	"github.com/cooklang/cooklang/metadata"
	"github.com/cooklang/cooklang/parser"
)

// Options configures a ParseAndAnalyze call. Registry may be nil, in which
// case unit-aware checks (timer units, reference unit compatibility) are
// skipped, matching the analyzer's own nil-Registry behavior.
type Options struct {
	Extensions   extensions.Extensions
	Registry     *convert.Registry
	RecipeExists func(name string) bool
}

// Result is the combined outcome of parsing and analyzing one document.
type Result struct {
	Content  analysis.RecipeContent
	Errors   []error
	Warnings []error
}

// diagErrors adapts a slice of diagnostics to plain errors so callers don't
// need to import the diag package just to read a message.
func diagErrors[T interface{ Error() string }](diags []T) []error {
	out := make([]error, len(diags))
	for i, d := range diags {
		out[i] = diagErrWrapper{d}
	}
	return out
}

type diagErrWrapper struct{ e interface{ Error() string } }

func (w diagErrWrapper) Error() string { return w.e.Error() }

// ParseAndAnalyze runs the full pipeline: lex+parse into an AST, decode
// front matter (YAML document or ">>" lines, whichever the source used),
// then walk the AST into a recipe model. Diagnostics from both passes are
// returned as plain errors for convenience; the returned error is non-nil
// when the combined result contains at least one parser or analyzer error
// (warnings never trigger it), or when the YAML front matter cannot be
// decoded, in which case no analysis is done.
func ParseAndAnalyze(source string, opts Options) (Result, error) {
	pr := parser.Parse(source, opts.Extensions)

	fm := make(map[string]string)
	if pr.HasFrontMatter {
		decoded, err := metadata.DecodeFrontMatter(pr.FrontMatter)
		if err != nil {
			return Result{}, fmt.Errorf("decoding front matter: %w", err)
		}
		fm = decoded
	}

	ar := analysis.Analyze(pr.Ast, fm, analysis.Options{
		Extensions:   opts.Extensions,
		Registry:     opts.Registry,
		RecipeExists: opts.RecipeExists,
	})

	result := Result{
		Content:  ar.Content,
		Errors:   append(diagErrors(pr.Errors), diagErrors(ar.Errors)...),
		Warnings: append(diagErrors(pr.Warnings), diagErrors(ar.Warnings)...),
	}
	if len(result.Errors) > 0 {
		return result, &DiagnosticError{Errors: result.Errors}
	}
	return result, nil
}

// DiagnosticError wraps one or more diagnostic errors so ParseAndAnalyze can
// report failure through a single `error` return without discarding the
// individual diagnostics for callers that want them.
type DiagnosticError struct {
	Errors []error
}

func (e *DiagnosticError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d diagnostic error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}
