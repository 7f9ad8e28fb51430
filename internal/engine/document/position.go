package document

// CursorPosition addresses a caret slot in a document: a paragraph
// index and a rune offset within that paragraph. Offset may equal the
// paragraph length (the slot after the last character).
type CursorPosition struct {
	Paragraph int
	Offset    int
}

// Compare orders two positions in document order. Returns -1, 0, or 1.
func (p CursorPosition) Compare(o CursorPosition) int {
	switch {
	case p.Paragraph < o.Paragraph:
		return -1
	case p.Paragraph > o.Paragraph:
		return 1
	case p.Offset < o.Offset:
		return -1
	case p.Offset > o.Offset:
		return 1
	default:
		return 0
	}
}

// Before reports whether p precedes o in document order.
func (p CursorPosition) Before(o CursorPosition) bool {
	return p.Compare(o) < 0
}

// Clamp constrains the position to valid coordinates of doc. An empty
// document clamps to {0, 0}.
func (p CursorPosition) Clamp(doc *Document) CursorPosition {
	n := doc.ParagraphCount()
	if n == 0 {
		return CursorPosition{}
	}
	if p.Paragraph < 0 {
		return CursorPosition{}
	}
	if p.Paragraph >= n {
		last := n - 1
		return CursorPosition{Paragraph: last, Offset: doc.ParagraphAt(last).Len()}
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if l := doc.ParagraphAt(p.Paragraph).Len(); p.Offset > l {
		p.Offset = l
	}
	return p
}

// SelectionRange is a directed span between two positions. Anchor is
// where the selection started, Active is the moving end; they may be in
// either document order, or equal for an empty selection.
type SelectionRange struct {
	Anchor CursorPosition
	Active CursorPosition
}

// IsEmpty reports whether the selection covers no text.
func (s SelectionRange) IsEmpty() bool {
	return s.Anchor == s.Active
}

// Normalized returns the selection endpoints in document order.
func (s SelectionRange) Normalized() (start, end CursorPosition) {
	if s.Active.Before(s.Anchor) {
		return s.Active, s.Anchor
	}
	return s.Anchor, s.Active
}

// Clamp constrains both endpoints to valid coordinates of doc.
func (s SelectionRange) Clamp(doc *Document) SelectionRange {
	return SelectionRange{
		Anchor: s.Anchor.Clamp(doc),
		Active: s.Active.Clamp(doc),
	}
}
