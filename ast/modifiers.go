package ast

// Modifiers is a bitset of the single-character component modifier sigils.
type Modifiers uint8

const (
	// ModRecipe (@) marks an ingredient as itself a link to another recipe.
	ModRecipe Modifiers = 1 << iota
	// ModRef (&) marks a component as an explicit reference to a prior
	// same-name definition.
	ModRef
	// ModHidden (-) hides a component from rendered ingredient lists.
	ModHidden
	// ModOpt (?) marks a component optional.
	ModOpt
	// ModNew (+) forces a component to be treated as a fresh definition even
	// if a same-name definition exists earlier in the document.
	ModNew
)

// Has reports whether all bits in want are set.
func (m Modifiers) Has(want Modifiers) bool {
	return m&want == want
}

// Any reports whether any bit in want is set.
func (m Modifiers) Any(want Modifiers) bool {
	return m&want != 0
}

// String renders the modifiers in sigil order, for diagnostics and tests.
func (m Modifiers) String() string {
	var out []byte
	if m.Has(ModRecipe) {
		out = append(out, '@')
	}
	if m.Has(ModRef) {
		out = append(out, '&')
	}
	if m.Has(ModHidden) {
		out = append(out, '-')
	}
	if m.Has(ModOpt) {
		out = append(out, '?')
	}
	if m.Has(ModNew) {
		out = append(out, '+')
	}
	if len(out) == 0 {
		return ""
	}
	return string(out)
}
