package ast

import (
	"strings"

	"github.com/cooklang/cooklang/span"
)

// TextFragment is a borrowed slice of the source plus the byte offset at
// which it starts. Sequences of fragments may have holes (stripped
// comments) or substituted characters (escapes stripped of their marker).
type TextFragment struct {
	Text   string
	Offset int
}

// Span returns the fragment's span in the original source.
func (f TextFragment) Span() span.Span {
	return span.New(f.Offset, f.Offset+len(f.Text))
}

// Text is an ordered, possibly-discontiguous sequence of fragments that
// together represent a run of source text once comments are dropped and
// escapes are unescaped.
type Text struct {
	Fragments []TextFragment
	// EnclosingSpan covers every fragment plus any elided bytes (comments,
	// escape markers) between them; it is set explicitly by the builder
	// rather than derived, since a Text with zero fragments still has a span
	// (an empty value where one was expected).
	EnclosingSpan span.Span
}

// NewText builds a Text from a single unbroken fragment.
func NewText(s string, offset int) Text {
	t := Text{Fragments: []TextFragment{{Text: s, Offset: offset}}}
	t.EnclosingSpan = span.New(offset, offset+len(s))
	return t
}

// EmptyText returns a Text with no fragments, spanning a single point.
func EmptyText(at int) Text {
	return Text{EnclosingSpan: span.Point(at)}
}

// checkAdjacent panics if fragments are not in non-decreasing source order.
// Fragments may abut or have gaps (elided comment/escape bytes) but must
// never overlap or go backwards.
func checkAdjacent(fragments []TextFragment) {
	for i := 1; i < len(fragments); i++ {
		prevEnd := fragments[i-1].Offset + len(fragments[i-1].Text)
		if fragments[i].Offset < prevEnd {
			panic("ast: text fragments are not adjacent in source order")
		}
	}
}

// Append adds a fragment to the end of t, checking adjacency.
func (t *Text) Append(s string, offset int) {
	frag := TextFragment{Text: s, Offset: offset}
	t.Fragments = append(t.Fragments, frag)
	checkAdjacent(t.Fragments)
	end := offset + len(s)
	if t.EnclosingSpan.IsEmpty() && len(t.Fragments) == 1 {
		t.EnclosingSpan = span.New(offset, end)
	} else {
		t.EnclosingSpan = t.EnclosingSpan.Union(span.New(offset, end))
	}
}

// Text joins all fragments into a single string with no separator; holes
// between fragments (elided comments) contribute nothing.
func (t Text) String() string {
	if len(t.Fragments) == 1 {
		return t.Fragments[0].Text
	}
	var b strings.Builder
	for _, f := range t.Fragments {
		b.WriteString(f.Text)
	}
	return b.String()
}

// Trimmed returns the joined text with leading and trailing whitespace
// removed.
func (t Text) Trimmed() string {
	return strings.TrimSpace(t.String())
}

// IsEmpty reports whether the joined text has no bytes at all.
func (t Text) IsEmpty() bool {
	return len(t.String()) == 0
}
