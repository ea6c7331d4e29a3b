// Package metadata handles the two ways recipe metadata reaches the model:
// decoded YAML front matter and `>>` key/value lines. Both funnel into the
// same map, with `>>` lines allowed to override a front-matter key.
package metadata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// DecodeFrontMatter decodes a YAML front-matter block (the text between the
// `---` delimiters, delimiters excluded) into a flat string map. Non-scalar
// values are rendered with fmt.Sprint so a list or nested map still produces
// something displayable rather than failing the whole document.
func DecodeFrontMatter(source string) (map[string]string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal([]byte(source), &raw); err != nil {
		return nil, fmt.Errorf("metadata: decoding YAML front matter: %w", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = stringify(v)
	}
	return out, nil
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// SpecialKey names a bracketed metadata key recognized under the MODES
// extension.
type SpecialKey int

const (
	NotSpecial SpecialKey = iota
	KeyDefineMode
	KeyDuplicateMode
	KeyAutoScale
)

// ParseSpecialKey recognizes a trimmed, bracket-stripped metadata key as one
// of the special keys, case-insensitively. "auto scale" and "auto_scale" are
// both accepted; no other separator variants are.
func ParseSpecialKey(key string) SpecialKey {
	switch normalizeKey(key) {
	case "define", "mode":
		return KeyDefineMode
	case "duplicate":
		return KeyDuplicateMode
	case "auto scale", "auto_scale":
		return KeyAutoScale
	default:
		return NotSpecial
	}
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// DefineMode mirrors the analyzer's `define_mode` state, set via the
// `define`/`mode` special key.
type DefineMode int

const (
	DefineAll DefineMode = iota
	DefineComponents
	DefineSteps
	DefineText
)

// ParseDefineMode recognizes a define/mode special key's value.
func ParseDefineMode(value string) (DefineMode, bool) {
	switch normalizeKey(value) {
	case "all", "default":
		return DefineAll, true
	case "components", "ingredients":
		return DefineComponents, true
	case "steps":
		return DefineSteps, true
	case "text":
		return DefineText, true
	default:
		return 0, false
	}
}

// DuplicateMode mirrors the analyzer's `duplicate_mode` state, set via the
// `duplicate` special key.
type DuplicateMode int

const (
	DuplicateNew DuplicateMode = iota
	DuplicateReference
)

// ParseDuplicateMode recognizes a duplicate special key's value.
func ParseDuplicateMode(value string) (DuplicateMode, bool) {
	switch normalizeKey(value) {
	case "new", "default":
		return DuplicateNew, true
	case "reference", "ref":
		return DuplicateReference, true
	default:
		return 0, false
	}
}

// ParseAutoScale recognizes an auto-scale special key's value.
func ParseAutoScale(value string) (bool, bool) {
	switch normalizeKey(value) {
	case "true":
		return true, true
	case "false", "default":
		return false, true
	default:
		return false, false
	}
}

// ParseServings validates and parses the conventional `servings` metadata
// value: a `|`-separated list of positive integers.
func ParseServings(value string) ([]int, error) {
	parts := strings.Split(value, "|")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("metadata: servings value %q is not an integer", p)
		}
		if n <= 0 {
			return nil, fmt.Errorf("metadata: servings value %d is not positive", n)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("metadata: servings value is empty")
	}
	return out, nil
}
