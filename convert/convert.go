// Package convert implements the unit registry and conversion engine: a
// configurable set of units grouped by physical quantity, affine conversion
// between them, and best-unit selection per measurement system.
package convert

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// PhysicalQuantity classifies what kind of measurement a unit expresses.
// Two quantities are convertible only if they share a PhysicalQuantity.
type PhysicalQuantity int

const (
	Volume PhysicalQuantity = iota
	Mass
	Length
	Temperature
	Time
)

func (p PhysicalQuantity) String() string {
	switch p {
	case Volume:
		return "volume"
	case Mass:
		return "mass"
	case Length:
		return "length"
	case Temperature:
		return "temperature"
	case Time:
		return "time"
	default:
		return "unknown"
	}
}

// System names a measurement convention a unit belongs to. Units with no
// system (e.g. a count like "cloves") convert freely within their physical
// quantity regardless of system.
type System int

const (
	Metric System = iota
	Imperial
)

func (s System) String() string {
	if s == Imperial {
		return "imperial"
	}
	return "metric"
}

// Unit is one registry entry: a family of names/symbols/aliases sharing a
// ratio-to-base conversion within its physical quantity.
type Unit struct {
	Names            []string
	Symbols          []string
	Aliases          []string
	Ratio            float64
	Difference       float64
	PhysicalQuantity PhysicalQuantity
	System           *System // nil if the unit is system-agnostic
}

// Symbol returns the unit's preferred short display form: its first symbol,
// or its first name if it has no symbols.
func (u Unit) Symbol() string {
	if len(u.Symbols) > 0 {
		return u.Symbols[0]
	}
	if len(u.Names) > 0 {
		return u.Names[0]
	}
	return ""
}

func (u Unit) String() string {
	return u.Symbol()
}

// allKeys returns every name, symbol, and alias this unit is known by.
func (u Unit) allKeys() []string {
	keys := make([]string, 0, len(u.Names)+len(u.Symbols)+len(u.Aliases))
	keys = append(keys, u.Names...)
	keys = append(keys, u.Symbols...)
	keys = append(keys, u.Aliases...)
	return keys
}

// BestConversionEntry is one (threshold, unit) pair in a best-conversions
// table: the unit is preferred once a normalized magnitude reaches
// Threshold.
type BestConversionEntry struct {
	Threshold float64
	UnitIndex int
}

// BestConversions is a sorted-by-threshold list of candidate units for one
// physical quantity (and, if BySystem, one system).
type BestConversions []BestConversionEntry

// bestUnit implements the tie-break rule: the largest threshold not
// exceeding magnitude, falling back to the first (smallest) entry if every
// threshold exceeds it.
func (b BestConversions) bestUnit(magnitude float64) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	for i := len(b) - 1; i >= 0; i-- {
		if magnitude >= b[i].Threshold {
			return b[i].UnitIndex, true
		}
	}
	return b[0].UnitIndex, true
}

// BestConversionsStore holds either one unified table for a physical
// quantity or two system-specific tables.
type BestConversionsStore struct {
	Unified  BestConversions
	Metric   BestConversions
	Imperial BestConversions
	bySystem bool
}

func UnifiedBest(entries BestConversions) BestConversionsStore {
	return BestConversionsStore{Unified: entries}
}

func BySystemBest(metric, imperial BestConversions) BestConversionsStore {
	return BestConversionsStore{Metric: metric, Imperial: imperial, bySystem: true}
}

func (s BestConversionsStore) forSystem(sys System) BestConversions {
	if !s.bySystem {
		return s.Unified
	}
	if sys == Imperial {
		return s.Imperial
	}
	return s.Metric
}

// UnknownUnitError is returned when a unit key has no registry entry.
type UnknownUnitError struct {
	Key string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Key)
}

// Registry is the immutable, host-built set of units this converter works
// over: every `Unit`, a case-insensitive key index into it, and the
// per-physical-quantity best-conversion tables. It is safe to share by
// reference across concurrently-running parses/analyses once built.
type Registry struct {
	units         []Unit
	index         map[string]int // lowercased key -> unit index
	byQuantity    map[PhysicalQuantity][]int
	best          map[PhysicalQuantity]BestConversionsStore
	defaultSystem System

	tempSymbols []string
	tempOnce    sync.Once
	tempRegex   *regexp.Regexp
	tempErr     error
}

// NewRegistry builds a Registry from a flat unit list. Units may repeat
// symbols/names across different keys only if they are the exact same unit
// instance at different indices is not supported; last registration for a
// colliding key wins, mirroring a config file where later entries are more
// specific overrides.
func NewRegistry(units []Unit, best map[PhysicalQuantity]BestConversionsStore, defaultSystem System) *Registry {
	r := &Registry{
		units:         units,
		index:         make(map[string]int),
		byQuantity:    make(map[PhysicalQuantity][]int),
		best:          best,
		defaultSystem: defaultSystem,
	}
	for i, u := range units {
		for _, k := range u.allKeys() {
			r.index[strings.ToLower(k)] = i
		}
		r.byQuantity[u.PhysicalQuantity] = append(r.byQuantity[u.PhysicalQuantity], i)
		if u.PhysicalQuantity == Temperature {
			r.tempSymbols = append(r.tempSymbols, u.allKeys()...)
		}
	}
	return r
}

// GetUnit resolves a unit by any of its names/symbols/aliases,
// case-insensitively.
func (r *Registry) GetUnit(key string) (Unit, error) {
	idx, ok := r.index[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Unit{}, &UnknownUnitError{Key: key}
	}
	return r.units[idx], nil
}

// unitIndex is like GetUnit but returns the index, for internal use by
// best-unit selection.
func (r *Registry) unitIndex(key string) (int, bool) {
	idx, ok := r.index[strings.ToLower(strings.TrimSpace(key))]
	return idx, ok
}

// DefaultSystem reports the registry's configured default measurement
// system.
func (r *Registry) DefaultSystem() System {
	return r.defaultSystem
}

// bestConversions returns the best-conversions table for q, if configured.
func (r *Registry) bestConversions(q PhysicalQuantity) (BestConversionsStore, bool) {
	s, ok := r.best[q]
	return s, ok
}

// TemperatureRegex lazily compiles and caches a regex matching a number
// immediately followed (with optional whitespace) by one of the registered
// temperature unit symbols. On compile failure (e.g. the pattern exceeds an
// engine-imposed size bound) it returns a non-nil error and a nil regex;
// callers must warn and disable temperature extraction rather than fail.
func (r *Registry) TemperatureRegex() (*regexp.Regexp, error) {
	r.tempOnce.Do(func() {
		if len(r.tempSymbols) == 0 {
			r.tempErr = fmt.Errorf("convert: no temperature units registered")
			return
		}
		escaped := make([]string, len(r.tempSymbols))
		for i, s := range r.tempSymbols {
			escaped[i] = regexp.QuoteMeta(s)
		}
		pattern := `([+-]?\d+([.,]\d+)?)\s*(` + strings.Join(escaped, "|") + `)`
		if len(pattern) > 500_000 {
			r.tempErr = fmt.Errorf("convert: temperature regex pattern too large (%d bytes)", len(pattern))
			return
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			r.tempErr = fmt.Errorf("convert: compiling temperature regex: %w", err)
			return
		}
		r.tempRegex = re
	})
	return r.tempRegex, r.tempErr
}
