package cursor

import (
	"github.com/dshills/inkstone/internal/engine/document"
)

// Geometry resolves positions to wrapped lines and back. The viewport
// manager implements it; tests substitute a fixed-grid fake.
type Geometry interface {
	// LineIndex returns the wrapped line a position sits on within
	// its paragraph.
	LineIndex(pos document.CursorPosition) int
	// LineCount returns the number of wrapped lines in a paragraph.
	LineCount(paragraph int) int
	// PositionAt returns the position on a paragraph's line nearest
	// the horizontal coordinate x.
	PositionAt(paragraph, line int, x float64) document.CursorPosition
	// CaretX returns a position's horizontal coordinate on its line.
	CaretX(pos document.CursorPosition) float64
	// PageLines returns how many lines one page spans.
	PageLines() int
}

// Engine drives a single caret with optional selection over a
// document. Vertical motion keeps a preferred horizontal position so
// the caret tracks a column through short lines; any horizontal motion
// or edit resets it. All motions clamp against the live document
// before they apply.
type Engine struct {
	doc *document.Document
	geo Geometry

	pos       document.CursorPosition
	anchor    document.CursorPosition
	selecting bool

	preferredX    float64
	hasPreferredX bool
}

// NewEngine creates a cursor engine at the document start.
func NewEngine(doc *document.Document, geo Geometry) *Engine {
	return &Engine{doc: doc, geo: geo}
}

// Position returns the caret position.
func (e *Engine) Position() document.CursorPosition {
	return e.pos
}

// SetPosition places the caret, collapsing any selection. The position
// is clamped to the document.
func (e *Engine) SetPosition(pos document.CursorPosition) {
	e.pos = pos.Clamp(e.doc)
	e.selecting = false
	e.hasPreferredX = false
}

// Selection returns the current selection and whether one exists.
func (e *Engine) Selection() (document.SelectionRange, bool) {
	if !e.selecting || e.anchor == e.pos {
		return document.SelectionRange{}, false
	}
	return document.SelectionRange{Anchor: e.anchor, Active: e.pos}, true
}

// HasSelection reports whether a non-empty selection exists.
func (e *Engine) HasSelection() bool {
	_, ok := e.Selection()
	return ok
}

// ClearSelection collapses the selection to the caret.
func (e *Engine) ClearSelection() {
	e.selecting = false
}

// Clamp re-validates the caret and selection against the document,
// after external edits.
func (e *Engine) Clamp() {
	e.pos = e.pos.Clamp(e.doc)
	if e.selecting {
		e.anchor = e.anchor.Clamp(e.doc)
		if e.anchor == e.pos {
			e.selecting = false
		}
	}
}

// beginMove starts a motion: when extending, the anchor is pinned at
// the pre-motion caret; otherwise the selection collapses.
func (e *Engine) beginMove(extend bool) {
	e.pos = e.pos.Clamp(e.doc)
	if extend {
		if !e.selecting {
			e.anchor = e.pos
			e.selecting = true
		}
		return
	}
	e.selecting = false
}

// Character Motion

// MoveLeft moves the caret one rune left, crossing to the end of the
// previous paragraph at a paragraph start. At the document start it
// stays put.
func (e *Engine) MoveLeft(extend bool) {
	e.beginMove(extend)
	e.hasPreferredX = false
	if e.pos.Offset > 0 {
		e.pos.Offset--
		return
	}
	if e.pos.Paragraph > 0 {
		e.pos.Paragraph--
		e.pos.Offset = e.paraLen(e.pos.Paragraph)
	}
}

// MoveRight moves the caret one rune right, crossing to the start of
// the next paragraph at a paragraph end. At the document end it stays
// put.
func (e *Engine) MoveRight(extend bool) {
	e.beginMove(extend)
	e.hasPreferredX = false
	if e.pos.Offset < e.paraLen(e.pos.Paragraph) {
		e.pos.Offset++
		return
	}
	if e.pos.Paragraph < e.doc.ParagraphCount()-1 {
		e.pos.Paragraph++
		e.pos.Offset = 0
	}
}

// Word Motion

// MoveWordLeft moves the caret to the start of the previous word.
func (e *Engine) MoveWordLeft(extend bool) {
	e.beginMove(extend)
	e.hasPreferredX = false
	if e.pos.Offset == 0 {
		if e.pos.Paragraph > 0 {
			e.pos.Paragraph--
			e.pos.Offset = e.paraLen(e.pos.Paragraph)
		}
		return
	}
	text := e.paraText(e.pos.Paragraph)
	e.pos.Offset = prevWordStart(text, e.pos.Offset)
}

// MoveWordRight moves the caret to the start of the next word.
func (e *Engine) MoveWordRight(extend bool) {
	e.beginMove(extend)
	e.hasPreferredX = false
	l := e.paraLen(e.pos.Paragraph)
	if e.pos.Offset >= l {
		if e.pos.Paragraph < e.doc.ParagraphCount()-1 {
			e.pos.Paragraph++
			e.pos.Offset = 0
		}
		return
	}
	text := e.paraText(e.pos.Paragraph)
	e.pos.Offset = nextWordStart(text, e.pos.Offset)
}

// Line Motion

// MoveUp moves the caret one wrapped line up, keeping the preferred
// horizontal position across short lines.
func (e *Engine) MoveUp(extend bool) {
	e.beginMove(extend)
	e.moveVertical(-1)
}

// MoveDown moves the caret one wrapped line down, keeping the
// preferred horizontal position.
func (e *Engine) MoveDown(extend bool) {
	e.beginMove(extend)
	e.moveVertical(1)
}

func (e *Engine) moveVertical(dir int) {
	x := e.caretX()
	line := e.geo.LineIndex(e.pos)
	if dir < 0 {
		switch {
		case line > 0:
			e.pos = e.geo.PositionAt(e.pos.Paragraph, line-1, x)
		case e.pos.Paragraph > 0:
			prev := e.pos.Paragraph - 1
			e.pos = e.geo.PositionAt(prev, e.geo.LineCount(prev)-1, x)
		default:
			e.pos.Offset = 0
		}
		return
	}
	switch {
	case line < e.geo.LineCount(e.pos.Paragraph)-1:
		e.pos = e.geo.PositionAt(e.pos.Paragraph, line+1, x)
	case e.pos.Paragraph < e.doc.ParagraphCount()-1:
		e.pos = e.geo.PositionAt(e.pos.Paragraph+1, 0, x)
	default:
		e.pos.Offset = e.paraLen(e.pos.Paragraph)
	}
}

// caretX resolves the preferred horizontal position, pinning it on the
// first vertical motion of a run.
func (e *Engine) caretX() float64 {
	if !e.hasPreferredX {
		e.preferredX = e.geo.CaretX(e.pos)
		e.hasPreferredX = true
	}
	return e.preferredX
}

// MoveLineStart moves the caret to the start of its wrapped line.
func (e *Engine) MoveLineStart(extend bool) {
	e.beginMove(extend)
	e.hasPreferredX = false
	line := e.geo.LineIndex(e.pos)
	e.pos = e.geo.PositionAt(e.pos.Paragraph, line, 0)
}

// MoveLineEnd moves the caret to the end of its wrapped line.
func (e *Engine) MoveLineEnd(extend bool) {
	e.beginMove(extend)
	e.hasPreferredX = false
	line := e.geo.LineIndex(e.pos)
	e.pos = e.geo.PositionAt(e.pos.Paragraph, line, maxX)
}

// maxX is farther right than any real caret coordinate.
const maxX = 1 << 30

// Page Motion

// MovePageUp moves the caret one viewport of lines up.
func (e *Engine) MovePageUp(extend bool) {
	e.beginMove(extend)
	for i := 0; i < e.geo.PageLines(); i++ {
		e.moveVertical(-1)
	}
}

// MovePageDown moves the caret one viewport of lines down.
func (e *Engine) MovePageDown(extend bool) {
	e.beginMove(extend)
	for i := 0; i < e.geo.PageLines(); i++ {
		e.moveVertical(1)
	}
}

// Document Motion

// MoveDocStart moves the caret to the document start.
func (e *Engine) MoveDocStart(extend bool) {
	e.beginMove(extend)
	e.hasPreferredX = false
	e.pos = document.CursorPosition{}
}

// MoveDocEnd moves the caret past the last rune of the last paragraph.
func (e *Engine) MoveDocEnd(extend bool) {
	e.beginMove(extend)
	e.hasPreferredX = false
	last := e.doc.ParagraphCount() - 1
	if last < 0 {
		e.pos = document.CursorPosition{}
		return
	}
	e.pos = document.CursorPosition{Paragraph: last, Offset: e.paraLen(last)}
}

// SelectAll selects the whole document, caret at the end.
func (e *Engine) SelectAll() {
	e.anchor = document.CursorPosition{}
	e.selecting = true
	e.hasPreferredX = false
	last := e.doc.ParagraphCount() - 1
	if last < 0 {
		e.pos = document.CursorPosition{}
		e.selecting = false
		return
	}
	e.pos = document.CursorPosition{Paragraph: last, Offset: e.paraLen(last)}
}

// SelectWord selects the word under the caret.
func (e *Engine) SelectWord() {
	e.pos = e.pos.Clamp(e.doc)
	text := e.paraText(e.pos.Paragraph)
	start, end := wordAt(text, e.pos.Offset)
	if start == end {
		return
	}
	e.anchor = document.CursorPosition{Paragraph: e.pos.Paragraph, Offset: start}
	e.pos = document.CursorPosition{Paragraph: e.pos.Paragraph, Offset: end}
	e.selecting = true
	e.hasPreferredX = false
}

func (e *Engine) paraLen(index int) int {
	if p := e.doc.ParagraphAt(index); p != nil {
		return p.Len()
	}
	return 0
}

func (e *Engine) paraText(index int) string {
	if p := e.doc.ParagraphAt(index); p != nil {
		return p.PlainText()
	}
	return ""
}
