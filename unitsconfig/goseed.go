package unitsconfig

import (
	units "github.com/bcicen/go-units"
)

// seedAliases defensively enriches a unit's alias list using bcicen/go-units'
// symbol table, for any of the given names/symbols it happens to recognize.
// This is strictly best-effort: go-units knowing nothing about a name, or
// not being wired into a build at all, never prevents the TOML-declared
// units from loading. Any failure here is silently absorbed.
func seedAliases(names []string, existing []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[a] = true
	}
	result := append([]string{}, existing...)

	for _, name := range names {
		u, err := units.Find(name)
		if err != nil {
			continue
		}
		for _, candidate := range []string{u.Name, u.PluralName, u.Symbol} {
			if candidate == "" || seen[candidate] {
				continue
			}
			seen[candidate] = true
			result = append(result, candidate)
		}
	}
	return result
}
