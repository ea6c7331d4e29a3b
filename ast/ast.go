// Package ast defines the tree produced by the parser: lines of metadata,
// steps, and sections, each carrying precise source spans so the analyzer
// and any downstream diagnostics can point back at exact source bytes.
package ast

import "github.com/cooklang/cooklang/span"

// ItemKind tags which variant an Item holds.
type ItemKind int

const (
	ItemText ItemKind = iota
	ItemComponent
)

// Item is one element of a step: either a run of plain text or a located
// component.
type Item struct {
	Kind      ItemKind
	Text      Text
	Component span.Located[Component]
}

func TextItem(t Text) Item {
	return Item{Kind: ItemText, Text: t}
}

func ComponentItem(c span.Located[Component]) Item {
	return Item{Kind: ItemComponent, Component: c}
}

// LineKind tags which variant a Line holds.
type LineKind int

const (
	LineMetadata LineKind = iota
	LineStep
	LineSection
)

// Line is one parsed line of the document.
type Line struct {
	Kind LineKind
	Span span.Span

	// Metadata fields.
	Key   Text
	Value Text

	// Step fields.
	IsText bool
	Items  []Item

	// Section fields.
	Name *Text
}

func MetadataLine(key, value Text, sp span.Span) Line {
	return Line{Kind: LineMetadata, Key: key, Value: value, Span: sp}
}

func StepLine(isText bool, items []Item, sp span.Span) Line {
	return Line{Kind: LineStep, IsText: isText, Items: items, Span: sp}
}

func SectionLine(name *Text, sp span.Span) Line {
	return Line{Kind: LineSection, Name: name, Span: sp}
}

// Ast is the parser's full output for one document: an ordered sequence of
// lines, each independently recoverable.
type Ast struct {
	Lines []Line
}
