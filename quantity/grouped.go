package quantity

import (
	"github.com/cooklang/cooklang/convert"
)

// TotalKind tags how many distinct quantities a GroupedQuantity reduced to.
type TotalKind int

const (
	TotalNone TotalKind = iota
	TotalSingle
	TotalMany
)

// Total is the result of reducing a GroupedQuantity: no quantities, exactly
// one, or several that could not be combined into one.
type Total struct {
	Kind   TotalKind
	Single Quantity
	Many   []Quantity
}

// GroupedQuantity buckets quantities for totals aggregation: one slot per
// known physical quantity, one per distinct unknown-unit text, one for
// unitless quantities, and a catch-all for anything that failed to combine.
type GroupedQuantity struct {
	byPhysical map[convert.PhysicalQuantity]Quantity
	byUnknown  map[string]Quantity
	noUnit     *Quantity
	other      []Quantity
}

func NewGroupedQuantity() *GroupedQuantity {
	return &GroupedQuantity{
		byPhysical: make(map[convert.PhysicalQuantity]Quantity),
		byUnknown:  make(map[string]Quantity),
	}
}

// Add folds q into the appropriate bucket, combining with any existing
// occupant via TryAddQuantities; a combination failure moves q (and,
// implicitly, leaves the existing occupant alone) into the "other" bucket.
func (g *GroupedQuantity) Add(reg *convert.Registry, q Quantity) {
	if q.Unit == nil {
		if g.noUnit == nil {
			g.noUnit = &q
			return
		}
		if sum, err := TryAddQuantities(reg, *g.noUnit, q); err == nil {
			g.noUnit = &sum
		} else {
			g.other = append(g.other, q)
		}
		return
	}

	info := q.Unit.Resolve(reg)
	if info.Kind == UnitKnown {
		key := info.Unit.PhysicalQuantity
		if existing, ok := g.byPhysical[key]; ok {
			if sum, err := TryAddQuantities(reg, existing, q); err == nil {
				g.byPhysical[key] = sum
			} else {
				g.other = append(g.other, q)
			}
		} else {
			g.byPhysical[key] = q
		}
		return
	}

	key := q.Unit.Text()
	if existing, ok := g.byUnknown[key]; ok {
		if sum, err := TryAddQuantities(reg, existing, q); err == nil {
			g.byUnknown[key] = sum
		} else {
			g.other = append(g.other, q)
		}
	} else {
		g.byUnknown[key] = q
	}
}

// Merge folds every bucket of other into g.
func (g *GroupedQuantity) Merge(reg *convert.Registry, other *GroupedQuantity) {
	if other.noUnit != nil {
		g.Add(reg, *other.noUnit)
	}
	for _, q := range other.byPhysical {
		g.Add(reg, q)
	}
	for _, q := range other.byUnknown {
		g.Add(reg, q)
	}
	g.other = append(g.other, other.other...)
}

// Total reduces the grouped buckets to a Total: None if empty, Single if
// exactly one bucket (and no "other" leftovers) is populated, Many
// otherwise.
func (g *GroupedQuantity) Total() Total {
	var all []Quantity
	if g.noUnit != nil {
		all = append(all, *g.noUnit)
	}
	for _, q := range g.byPhysical {
		all = append(all, q)
	}
	for _, q := range g.byUnknown {
		all = append(all, q)
	}
	all = append(all, g.other...)

	switch len(all) {
	case 0:
		return Total{Kind: TotalNone}
	case 1:
		return Total{Kind: TotalSingle, Single: all[0]}
	default:
		return Total{Kind: TotalMany, Many: all}
	}
}
