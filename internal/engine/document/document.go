package document

import (
	"errors"
	"strings"

	"github.com/dshills/inkstone/internal/engine/element"
)

// Errors returned by document operations.
var (
	ErrParagraphOutOfRange = errors.New("paragraph index out of range")
	ErrInvalidOperation    = errors.New("invalid document operation")
)

// Observer receives change notifications from a Document. Callbacks run
// synchronously, in registration order, after the mutation completes.
type Observer interface {
	ParagraphInserted(index int)
	ParagraphRemoved(index int)
	ParagraphModified(index int)
	ContentChanged()
}

// Document is an ordered sequence of paragraphs with an observer
// registry and a modified flag. All operations are synchronous and the
// document performs no internal locking; callers serialize access.
type Document struct {
	paragraphs []*Paragraph
	observers  []Observer
	modified   bool
}

// New creates a document holding a single empty paragraph.
func New() *Document {
	return &Document{paragraphs: []*Paragraph{NewParagraph("")}}
}

// Empty creates a document with no paragraphs, for codec use.
func Empty() *Document {
	return &Document{}
}

// Observer Registry

// AddObserver registers an observer. Nil observers are ignored.
func (d *Document) AddObserver(o Observer) {
	if o == nil {
		return
	}
	d.observers = append(d.observers, o)
}

// RemoveObserver unregisters a previously added observer.
func (d *Document) RemoveObserver(o Observer) {
	for i, reg := range d.observers {
		if reg == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

func (d *Document) notifyInserted(index int) {
	d.modified = true
	for _, o := range d.observers {
		o.ParagraphInserted(index)
	}
	d.notifyContent()
}

func (d *Document) notifyRemoved(index int) {
	d.modified = true
	for _, o := range d.observers {
		o.ParagraphRemoved(index)
	}
	d.notifyContent()
}

func (d *Document) notifyModified(index int) {
	d.modified = true
	for _, o := range d.observers {
		o.ParagraphModified(index)
	}
	d.notifyContent()
}

func (d *Document) notifyContent() {
	for _, o := range d.observers {
		o.ContentChanged()
	}
}

// Read Operations

// ParagraphCount returns the number of paragraphs.
func (d *Document) ParagraphCount() int {
	return len(d.paragraphs)
}

// ParagraphAt returns the paragraph at index, or nil if out of range.
func (d *Document) ParagraphAt(index int) *Paragraph {
	if index < 0 || index >= len(d.paragraphs) {
		return nil
	}
	return d.paragraphs[index]
}

// Len returns the total rune count across all paragraphs, excluding
// paragraph separators.
func (d *Document) Len() int {
	total := 0
	for _, p := range d.paragraphs {
		total += p.Len()
	}
	return total
}

// PlainText returns the document text with paragraphs joined by
// newlines.
func (d *Document) PlainText() string {
	var b strings.Builder
	for i, p := range d.paragraphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.PlainText())
	}
	return b.String()
}

// IsModified reports whether the document changed since the flag was
// last cleared.
func (d *Document) IsModified() bool {
	return d.modified
}

// ClearModified resets the modified flag, typically after a save.
func (d *Document) ClearModified() {
	d.modified = false
}

// Structural Operations

// AddParagraph appends a paragraph and returns its index.
func (d *Document) AddParagraph(p *Paragraph) int {
	d.paragraphs = append(d.paragraphs, p)
	index := len(d.paragraphs) - 1
	d.notifyInserted(index)
	return index
}

// InsertParagraph inserts a paragraph at index, shifting later ones.
// Index may equal ParagraphCount to append.
func (d *Document) InsertParagraph(index int, p *Paragraph) error {
	if index < 0 || index > len(d.paragraphs) {
		return ErrParagraphOutOfRange
	}
	d.paragraphs = append(d.paragraphs, nil)
	copy(d.paragraphs[index+1:], d.paragraphs[index:])
	d.paragraphs[index] = p
	d.notifyInserted(index)
	return nil
}

// RemoveParagraph deletes the paragraph at index. Removing the last
// remaining paragraph leaves a fresh empty one, so a live document
// never has zero paragraphs.
func (d *Document) RemoveParagraph(index int) error {
	if index < 0 || index >= len(d.paragraphs) {
		return ErrParagraphOutOfRange
	}
	d.paragraphs = append(d.paragraphs[:index], d.paragraphs[index+1:]...)
	d.notifyRemoved(index)
	if len(d.paragraphs) == 0 {
		d.paragraphs = append(d.paragraphs, NewParagraph(""))
		d.notifyInserted(0)
	}
	return nil
}

// Edit Operations

// InsertText splices text into the paragraph at the position.
func (d *Document) InsertText(pos CursorPosition, text string) error {
	p := d.ParagraphAt(pos.Paragraph)
	if p == nil {
		return ErrParagraphOutOfRange
	}
	if err := p.InsertText(pos.Offset, text); err != nil {
		return err
	}
	d.notifyModified(pos.Paragraph)
	return nil
}

// DeleteText removes the text between two positions. Within one
// paragraph it is a plain range delete. Across paragraphs it removes
// the tail of the first, the head of the last, merges the remainder of
// the last into the first, and drops the paragraphs in between. The
// first paragraph's style and alignment survive the merge.
func (d *Document) DeleteText(start, end CursorPosition) error {
	if end.Before(start) {
		start, end = end, start
	}
	first := d.ParagraphAt(start.Paragraph)
	last := d.ParagraphAt(end.Paragraph)
	if first == nil || last == nil {
		return ErrParagraphOutOfRange
	}
	if start.Offset < 0 || start.Offset > first.Len() ||
		end.Offset < 0 || end.Offset > last.Len() {
		return element.ErrRangeInvalid
	}

	if start.Paragraph == end.Paragraph {
		if err := first.DeleteText(start.Offset, end.Offset); err != nil {
			return err
		}
		d.notifyModified(start.Paragraph)
		return nil
	}

	if err := first.DeleteText(start.Offset, first.Len()); err != nil {
		return err
	}
	if err := last.DeleteText(0, end.Offset); err != nil {
		return err
	}
	first.AppendFrom(last)

	for i := end.Paragraph; i > start.Paragraph; i-- {
		d.paragraphs = append(d.paragraphs[:i], d.paragraphs[i+1:]...)
		d.notifyRemoved(i)
	}
	d.notifyModified(start.Paragraph)
	return nil
}

// SplitParagraph breaks the paragraph at the position in two. Splitting
// at offset 0 inserts an empty paragraph with the same style before the
// current one, leaving its content in place.
func (d *Document) SplitParagraph(pos CursorPosition) error {
	p := d.ParagraphAt(pos.Paragraph)
	if p == nil {
		return ErrParagraphOutOfRange
	}
	if pos.Offset < 0 || pos.Offset > p.Len() {
		return element.ErrOffsetOutOfRange
	}
	if pos.Offset == 0 {
		blank := NewParagraph(p.StyleID())
		blank.SetAlignment(p.Alignment())
		return d.InsertParagraph(pos.Paragraph, blank)
	}
	rest := p.SplitAt(pos.Offset)
	if rest == nil {
		return ErrInvalidOperation
	}
	if err := d.InsertParagraph(pos.Paragraph+1, rest); err != nil {
		return err
	}
	d.notifyModified(pos.Paragraph)
	return nil
}

// MergeParagraphWithPrevious joins the paragraph at index onto the end
// of the one before it and removes it. Returns the rune offset of the
// join point in the merged paragraph, where a caret should land.
func (d *Document) MergeParagraphWithPrevious(index int) (int, error) {
	if index <= 0 {
		return -1, ErrInvalidOperation
	}
	if index >= len(d.paragraphs) {
		return -1, ErrParagraphOutOfRange
	}
	prev := d.paragraphs[index-1]
	join := prev.Len()
	prev.AppendFrom(d.paragraphs[index])
	d.paragraphs = append(d.paragraphs[:index], d.paragraphs[index+1:]...)
	d.notifyRemoved(index)
	d.notifyModified(index - 1)
	return join, nil
}

// Format Operations

// ApplyFormat wraps the text between two positions in the given
// formatting kind, paragraph by paragraph.
func (d *Document) ApplyFormat(start, end CursorPosition, kind element.Kind) error {
	return d.eachFormatRange(start, end, func(p *Paragraph, s, e int) error {
		return p.ApplyFormat(s, e, kind)
	})
}

// RemoveFormat strips the given formatting kind from the text between
// two positions, paragraph by paragraph.
func (d *Document) RemoveFormat(start, end CursorPosition, kind element.Kind) error {
	return d.eachFormatRange(start, end, func(p *Paragraph, s, e int) error {
		return p.RemoveFormat(s, e, kind)
	})
}

func (d *Document) eachFormatRange(start, end CursorPosition, fn func(p *Paragraph, s, e int) error) error {
	if end.Before(start) {
		start, end = end, start
	}
	if d.ParagraphAt(start.Paragraph) == nil || d.ParagraphAt(end.Paragraph) == nil {
		return ErrParagraphOutOfRange
	}
	for i := start.Paragraph; i <= end.Paragraph; i++ {
		p := d.paragraphs[i]
		s, e := 0, p.Len()
		if i == start.Paragraph {
			s = start.Offset
		}
		if i == end.Paragraph {
			e = end.Offset
		}
		if s == e {
			continue
		}
		if err := fn(p, s, e); err != nil {
			return err
		}
		d.notifyModified(i)
	}
	return nil
}

// ApplyStyle assigns a paragraph style id to every paragraph a
// selection touches.
func (d *Document) ApplyStyle(sel SelectionRange, styleID string) error {
	start, end := sel.Normalized()
	if d.ParagraphAt(start.Paragraph) == nil || d.ParagraphAt(end.Paragraph) == nil {
		return ErrParagraphOutOfRange
	}
	for i := start.Paragraph; i <= end.Paragraph; i++ {
		d.paragraphs[i].SetStyleID(styleID)
		d.notifyModified(i)
	}
	return nil
}

// SetParagraphStyle assigns a paragraph style id.
func (d *Document) SetParagraphStyle(index int, styleID string) error {
	p := d.ParagraphAt(index)
	if p == nil {
		return ErrParagraphOutOfRange
	}
	p.SetStyleID(styleID)
	d.notifyModified(index)
	return nil
}

// SetParagraphAlignment assigns a paragraph alignment.
func (d *Document) SetParagraphAlignment(index int, a Alignment) error {
	p := d.ParagraphAt(index)
	if p == nil {
		return ErrParagraphOutOfRange
	}
	p.SetAlignment(a)
	d.notifyModified(index)
	return nil
}

// Clone returns a deep copy of the document. Observers are not copied
// and the clone's modified flag is clear.
func (d *Document) Clone() *Document {
	cp := &Document{paragraphs: make([]*Paragraph, len(d.paragraphs))}
	for i, p := range d.paragraphs {
		cp.paragraphs[i] = p.Clone()
	}
	return cp
}
