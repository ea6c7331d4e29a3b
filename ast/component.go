package ast

// IntermediateTargetKind names what kind of line an intermediate reference
// points at.
type IntermediateTargetKind int

const (
	IntermediateStep IntermediateTargetKind = iota
	IntermediateSection
)

// IntermediateRefMode names how val is interpreted.
type IntermediateRefMode int

const (
	// RefIndex: val is an absolute, zero-based index.
	RefIndex IntermediateRefMode = iota
	// RefRelative: val counts backwards from "here".
	RefRelative
)

// IntermediateData is carried by an ingredient whose reference target is a
// prior step or section rather than another ingredient, e.g. "@&2{}".
type IntermediateData struct {
	TargetKind IntermediateTargetKind
	RefMode    IntermediateRefMode
	Val        int32
}

// Ingredient is the AST-level representation of an "@name{qty%unit}(note)"
// component.
type Ingredient struct {
	Modifiers    Modifiers
	Name         Text
	Alias        *Text
	Quantity     *Quantity
	Note         *Text
	Intermediate *IntermediateData
}

func (i Ingredient) Recover(at int) Ingredient {
	return Ingredient{Name: EmptyText(at)}
}

// Cookware is the AST-level representation of a "#name{qty}(note)"
// component. It never carries a unit or intermediate-reference data.
type Cookware struct {
	Modifiers Modifiers
	Name      Text
	Alias     *Text
	Quantity  *Quantity
	Note      *Text
}

func (c Cookware) Recover(at int) Cookware {
	return Cookware{Name: EmptyText(at)}
}

// Timer is the AST-level representation of a "~name{qty%unit}" component.
// Timers never carry modifiers, aliases, or notes.
type Timer struct {
	Name     *Text
	Quantity *Quantity
}

func (t Timer) Recover(at int) Timer {
	return Timer{}
}

// ComponentKind tags which variant a Component holds.
type ComponentKind int

const (
	KindIngredient ComponentKind = iota
	KindCookware
	KindTimer
)

// Component is the tagged union of the three inline component kinds that
// can appear as an Item in a step.
type Component struct {
	Kind       ComponentKind
	Ingredient Ingredient
	Cookware   Cookware
	Timer      Timer
}

func IngredientComponent(i Ingredient) Component {
	return Component{Kind: KindIngredient, Ingredient: i}
}

func CookwareComponent(c Cookware) Component {
	return Component{Kind: KindCookware, Cookware: c}
}

func TimerComponent(t Timer) Component {
	return Component{Kind: KindTimer, Timer: t}
}
