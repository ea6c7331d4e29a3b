// Package unitsconfig loads a unit registry from a TOML configuration file,
// the host-supplied input the converter is built from. This is ambient
// plumbing around the core converter, not part of it.
package unitsconfig

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/cooklang/cooklang/convert"
)

// unitEntry mirrors one [[unit]] table in the TOML document.
type unitEntry struct {
	Names            []string `toml:"names"`
	Symbols          []string `toml:"symbols"`
	Aliases          []string `toml:"aliases"`
	Ratio            float64  `toml:"ratio"`
	Difference       float64  `toml:"difference"`
	PhysicalQuantity string   `toml:"physical_quantity"`
	System           string   `toml:"system"`
}

// bestEntry mirrors one [[best.<quantity>]] table.
type bestEntry struct {
	Threshold float64 `toml:"threshold"`
	Unit      string  `toml:"unit"`
	System    string  `toml:"system"` // "metric"/"imperial", empty for unified
}

type document struct {
	DefaultSystem string                 `toml:"default_system"`
	Unit          []unitEntry            `toml:"unit"`
	Best          map[string][]bestEntry `toml:"best"`
}

func parsePhysicalQuantity(s string) (convert.PhysicalQuantity, error) {
	switch s {
	case "volume":
		return convert.Volume, nil
	case "mass":
		return convert.Mass, nil
	case "length":
		return convert.Length, nil
	case "temperature":
		return convert.Temperature, nil
	case "time":
		return convert.Time, nil
	default:
		return 0, fmt.Errorf("unitsconfig: unknown physical_quantity %q", s)
	}
}

func parseSystem(s string) *convert.System {
	switch s {
	case "metric":
		sys := convert.Metric
		return &sys
	case "imperial":
		sys := convert.Imperial
		return &sys
	default:
		return nil
	}
}

// Load reads and decodes a units.toml document into a usable registry.
func Load(path string) (*convert.Registry, error) {
	var doc document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("unitsconfig: decoding %s: %w", path, err)
	}
	return build(doc)
}

// LoadBytes is like Load but decodes an in-memory TOML document; useful for
// tests and for registries embedded in a binary.
func LoadBytes(data []byte) (*convert.Registry, error) {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("unitsconfig: decoding units config: %w", err)
	}
	return build(doc)
}

func build(doc document) (*convert.Registry, error) {
	units := make([]convert.Unit, 0, len(doc.Unit))
	nameToIndex := make(map[string]int)
	for _, e := range doc.Unit {
		pq, err := parsePhysicalQuantity(e.PhysicalQuantity)
		if err != nil {
			return nil, err
		}
		u := convert.Unit{
			Names:            e.Names,
			Symbols:          e.Symbols,
			Aliases:          seedAliases(append(append([]string{}, e.Names...), e.Symbols...), e.Aliases),
			Ratio:            e.Ratio,
			Difference:       e.Difference,
			PhysicalQuantity: pq,
			System:           parseSystem(e.System),
		}
		idx := len(units)
		units = append(units, u)
		for _, n := range append(append([]string{}, e.Names...), e.Symbols...) {
			nameToIndex[n] = idx
		}
	}

	best := make(map[convert.PhysicalQuantity]convert.BestConversionsStore)
	for quantityName, entries := range doc.Best {
		pq, err := parsePhysicalQuantity(quantityName)
		if err != nil {
			return nil, err
		}
		var metric, imperial, unified convert.BestConversions
		bySystem := false
		for _, be := range entries {
			idx, ok := nameToIndex[be.Unit]
			if !ok {
				return nil, fmt.Errorf("unitsconfig: best-conversion entry references unknown unit %q", be.Unit)
			}
			entry := convert.BestConversionEntry{Threshold: be.Threshold, UnitIndex: idx}
			switch be.System {
			case "metric":
				bySystem = true
				metric = append(metric, entry)
			case "imperial":
				bySystem = true
				imperial = append(imperial, entry)
			default:
				unified = append(unified, entry)
			}
		}
		if bySystem {
			best[pq] = convert.BySystemBest(metric, imperial)
		} else {
			best[pq] = convert.UnifiedBest(unified)
		}
	}

	sys := convert.Metric
	if doc.DefaultSystem == "imperial" {
		sys = convert.Imperial
	}

	return convert.NewRegistry(units, best, sys), nil
}
