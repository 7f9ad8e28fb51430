package document

import (
	"github.com/dshills/inkstone/internal/engine/element"
)

// Alignment is the horizontal alignment of a paragraph.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// String returns the markup attribute value for the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// ParseAlignment maps a markup attribute value to an alignment.
// Unknown values fall back to left.
func ParseAlignment(s string) Alignment {
	switch s {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	case "justify":
		return AlignJustify
	default:
		return AlignLeft
	}
}

// FormatSpan is one run of the paragraph's flattened format projection:
// a maximal half-open range over which the active formatting set is
// constant.
type FormatSpan struct {
	Start int
	End   int
	Attrs element.KindSet
}

// Paragraph is one block of rich text: an inline element sequence plus
// a paragraph style id, alignment, and anchored comments. Every content
// mutation bumps the revision counter, which layout caches key on.
type Paragraph struct {
	elements  []*element.Element
	styleID   string
	alignment Alignment
	comments  []Comment

	revision uint64

	spans      []FormatSpan
	spansValid bool
}

// NewParagraph creates an empty paragraph with the given style id.
func NewParagraph(styleID string) *Paragraph {
	return &Paragraph{styleID: styleID}
}

// NewParagraphWithText creates a paragraph holding a single plain run.
func NewParagraphWithText(styleID, text string) *Paragraph {
	p := NewParagraph(styleID)
	if text != "" {
		p.elements = []*element.Element{element.NewTextRun(text)}
	}
	return p
}

// Len returns the paragraph's rune length.
func (p *Paragraph) Len() int {
	return element.TotalLen(p.elements)
}

// PlainText returns the paragraph's text without formatting.
func (p *Paragraph) PlainText() string {
	return element.PlainText(p.elements)
}

// Elements returns the inline element sequence. Read-only view.
func (p *Paragraph) Elements() []*element.Element {
	return p.elements
}

// SetElements replaces the inline element sequence.
func (p *Paragraph) SetElements(elems []*element.Element) {
	p.elements = elems
	p.touch()
}

// StyleID returns the paragraph style id.
func (p *Paragraph) StyleID() string {
	return p.styleID
}

// SetStyleID sets the paragraph style id.
func (p *Paragraph) SetStyleID(id string) {
	if p.styleID == id {
		return
	}
	p.styleID = id
	p.touch()
}

// Alignment returns the paragraph alignment.
func (p *Paragraph) Alignment() Alignment {
	return p.alignment
}

// SetAlignment sets the paragraph alignment.
func (p *Paragraph) SetAlignment(a Alignment) {
	if p.alignment == a {
		return
	}
	p.alignment = a
	p.touch()
}

// Revision returns the paragraph's mutation counter.
func (p *Paragraph) Revision() uint64 {
	return p.revision
}

func (p *Paragraph) touch() {
	p.revision++
	p.spansValid = false
}

// Edit Operations

// InsertText splices text at the given rune offset. Comment ranges at
// or after the offset shift right.
func (p *Paragraph) InsertText(offset int, text string) error {
	elems, err := element.InsertText(p.elements, offset, text)
	if err != nil {
		return err
	}
	p.elements = elems
	n := runeLen(text)
	for i := range p.comments {
		p.comments[i] = p.comments[i].shift(offset, n)
	}
	p.touch()
	return nil
}

// DeleteText removes the runes in [start, end). Comments emptied by the
// deletion are dropped.
func (p *Paragraph) DeleteText(start, end int) error {
	elems, err := element.DeleteRange(p.elements, start, end)
	if err != nil {
		return err
	}
	p.elements = elems
	if start > end {
		start, end = end, start
	}
	kept := p.comments[:0]
	for _, c := range p.comments {
		if adj, ok := c.contract(start, end); ok {
			kept = append(kept, adj)
		}
	}
	p.comments = kept
	p.touch()
	return nil
}

// ApplyFormat wraps [start, end) in a container of the given kind.
func (p *Paragraph) ApplyFormat(start, end int, kind element.Kind) error {
	elems, err := element.ApplyFormat(p.elements, start, end, kind)
	if err != nil {
		return err
	}
	p.elements = elems
	p.touch()
	return nil
}

// RemoveFormat unwraps containers of the given kind within [start, end).
func (p *Paragraph) RemoveFormat(start, end int, kind element.Kind) error {
	elems, err := element.RemoveFormat(p.elements, start, end, kind)
	if err != nil {
		return err
	}
	p.elements = elems
	p.touch()
	return nil
}

// HasFormatAt reports whether the character at offset carries the kind.
func (p *Paragraph) HasFormatAt(offset int, kind element.Kind) bool {
	return element.HasFormatAt(p.elements, offset, kind)
}

// HasFormatInRange reports whether all of [start, end) carries the kind.
func (p *Paragraph) HasFormatInRange(start, end int, kind element.Kind) bool {
	return element.HasFormatInRange(p.elements, start, end, kind)
}

// SplitAt divides the paragraph at the given rune offset, keeping
// [0, offset) and returning a new paragraph holding [offset, len).
// Offsets at or below zero, or past the end, return nil. Splitting at
// the exact end returns a new empty paragraph with the same style.
// Comments anchored at or past the offset move to the new paragraph.
func (p *Paragraph) SplitAt(offset int) *Paragraph {
	l := p.Len()
	if offset <= 0 || offset > l {
		return nil
	}
	rest := NewParagraph(p.styleID)
	rest.alignment = p.alignment
	if offset == l {
		p.touch()
		return rest
	}
	left, right := element.SplitAt(p.elements, offset)
	p.elements = left
	rest.elements = right

	kept := p.comments[:0]
	for _, c := range p.comments {
		if c.Start >= offset {
			c.Start -= offset
			c.End -= offset
			rest.comments = append(rest.comments, c)
			continue
		}
		if c.End > offset {
			c.End = offset
		}
		kept = append(kept, c)
	}
	p.comments = kept
	p.touch()
	return rest
}

// AppendFrom appends the content of other to the end of p, shifting
// other's comment anchors by p's prior length. Other is left empty.
func (p *Paragraph) AppendFrom(other *Paragraph) {
	base := p.Len()
	p.elements = element.Normalize(append(p.elements, other.elements...))
	for _, c := range other.comments {
		c.Start += base
		c.End += base
		p.comments = append(p.comments, c)
	}
	other.elements = nil
	other.comments = nil
	other.touch()
	p.touch()
}

// Clone returns a deep copy of the paragraph.
func (p *Paragraph) Clone() *Paragraph {
	cp := &Paragraph{
		styleID:   p.styleID,
		alignment: p.alignment,
		elements:  element.CloneAll(p.elements),
	}
	if len(p.comments) > 0 {
		cp.comments = append([]Comment(nil), p.comments...)
	}
	return cp
}

// Format Projection

// FormatSpans returns the paragraph's flattened format projection:
// contiguous half-open spans covering [0, Len()) with the formatting
// bitmask active over each. The projection is rebuilt lazily after
// mutations and memoized until the next edit.
func (p *Paragraph) FormatSpans() []FormatSpan {
	if p.spansValid {
		return p.spans
	}
	p.spans = p.spans[:0]
	element.VisitLeaves(p.elements, func(start, end int, active element.KindSet) bool {
		if n := len(p.spans); n > 0 && p.spans[n-1].Attrs == active && p.spans[n-1].End == start {
			p.spans[n-1].End = end
			return true
		}
		p.spans = append(p.spans, FormatSpan{Start: start, End: end, Attrs: active})
		return true
	})
	p.spansValid = true
	return p.spans
}

// Comments

// AddComment anchors a comment to [start, end) and returns its id.
func (p *Paragraph) AddComment(start, end int, author, text string) (string, error) {
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > p.Len() {
		return "", element.ErrRangeInvalid
	}
	c := NewComment(start, end, author, text)
	p.comments = append(p.comments, c)
	return c.ID, nil
}

// Comments returns the paragraph's comments. Read-only view.
func (p *Paragraph) Comments() []Comment {
	return p.comments
}

// CommentByID returns the comment with the given id.
func (p *Paragraph) CommentByID(id string) (Comment, bool) {
	for _, c := range p.comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// CommentsAt returns the comments whose range covers the offset.
func (p *Paragraph) CommentsAt(offset int) []Comment {
	var out []Comment
	for _, c := range p.comments {
		if c.Contains(offset) {
			out = append(out, c)
		}
	}
	return out
}

// RemoveComment deletes the comment with the given id.
func (p *Paragraph) RemoveComment(id string) bool {
	for i, c := range p.comments {
		if c.ID == id {
			p.comments = append(p.comments[:i], p.comments[i+1:]...)
			return true
		}
	}
	return false
}

// ResolveComment marks the comment with the given id as resolved.
func (p *Paragraph) ResolveComment(id string) bool {
	for i := range p.comments {
		if p.comments[i].ID == id {
			p.comments[i].Resolved = true
			return true
		}
	}
	return false
}

// RestoreComment reattaches a decoded comment verbatim, keeping its id
// and timestamps. Used by the markup codec.
func (p *Paragraph) RestoreComment(c Comment) {
	p.comments = append(p.comments, c)
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
