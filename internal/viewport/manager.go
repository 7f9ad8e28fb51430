package viewport

import (
	"github.com/dshills/inkstone/internal/engine/document"
	"github.com/dshills/inkstone/internal/layout"
)

// Options tunes a Manager. Zero values select the defaults.
type Options struct {
	EstimatedLineHeight float64
	BufferParagraphs    int
	CacheSize           int
}

// ParagraphPlan is one paragraph of the render plan: its index, its
// document-space top, and its line geometry.
type ParagraphPlan struct {
	Index  int
	Y      float64
	Layout *layout.ParagraphLayout
}

// Manager combines the virtual scroll state with the layout cache to
// answer the questions a renderer asks: which paragraphs are visible,
// where do they sit, and how do cursor positions map to points. It
// observes the document and keeps both structures in sync with edits.
type Manager struct {
	doc     *document.Document
	scroll  *VirtualScroll
	cache   *layout.Cache
	metrics layout.Metrics
	width   float64
	buffer  int
}

// NewManager creates a manager over doc and registers it as an
// observer. Call Detach when discarding it.
func NewManager(doc *document.Document, m layout.Metrics, o Options) *Manager {
	buffer := o.BufferParagraphs
	if buffer <= 0 {
		buffer = DefaultBufferParagraphs
	}
	mgr := &Manager{
		doc:     doc,
		scroll:  NewVirtualScroll(doc.ParagraphCount(), o.EstimatedLineHeight, buffer),
		cache:   layout.NewCache(o.CacheSize),
		metrics: m,
		buffer:  buffer,
	}
	doc.AddObserver(mgr)
	return mgr
}

// Detach unregisters the manager from its document.
func (m *Manager) Detach() {
	m.doc.RemoveObserver(m)
}

// Scroll returns the underlying scroll state.
func (m *Manager) Scroll() *VirtualScroll {
	return m.scroll
}

// SetSize sets the viewport dimensions. A width change discards all
// cached geometry, since every wrap depends on it.
func (m *Manager) SetSize(width, height float64) {
	if width != m.width {
		m.width = width
		m.cache.Purge()
		m.scroll.Reset(m.doc.ParagraphCount())
	}
	m.scroll.SetViewportHeight(height)
}

// Width returns the current wrap width.
func (m *Manager) Width() float64 {
	return m.width
}

// Layout returns the line geometry for a paragraph, building it on
// demand and feeding the measured height back into the scroll state.
func (m *Manager) Layout(index int) *layout.ParagraphLayout {
	p := m.doc.ParagraphAt(index)
	if p == nil {
		return nil
	}
	pl := m.cache.Get(index, p, m.metrics, m.width)
	if !m.scroll.HeightKnown(index) {
		m.scroll.UpdateParagraphHeight(index, pl.Height())
	}
	return pl
}

// RenderPlan lays out the buffered paragraph window and returns plan
// entries for it in document order. Measuring may refine estimated
// heights, so positions are resolved after the measurement pass.
func (m *Manager) RenderPlan() []ParagraphPlan {
	first, last := m.scroll.BufferedRange()
	if last < first {
		return nil
	}
	layouts := make([]*layout.ParagraphLayout, 0, last-first+1)
	for i := first; i <= last; i++ {
		layouts = append(layouts, m.Layout(i))
	}
	plan := make([]ParagraphPlan, 0, len(layouts))
	for i, pl := range layouts {
		index := first + i
		plan = append(plan, ParagraphPlan{
			Index:  index,
			Y:      m.scroll.ParagraphY(index),
			Layout: pl,
		})
	}
	return plan
}

// PositionToPoint maps a cursor position to document-space caret
// coordinates: the caret's top-left point and its height.
func (m *Manager) PositionToPoint(pos document.CursorPosition) (x, y, h float64, ok bool) {
	pl := m.Layout(pos.Paragraph)
	if pl == nil {
		return 0, 0, 0, false
	}
	cx, cy, ch := pl.CursorRect(pos.Offset)
	return cx, m.scroll.ParagraphY(pos.Paragraph) + cy, ch, true
}

// PointToPosition maps a document-space point to the nearest cursor
// position.
func (m *Manager) PointToPosition(x, y float64) document.CursorPosition {
	index := m.scroll.ParagraphAtY(y)
	if index < 0 {
		return document.CursorPosition{}
	}
	pl := m.Layout(index)
	localY := y - m.scroll.ParagraphY(index)
	line := 0
	for i, ln := range pl.Lines() {
		if localY < ln.Y+ln.Height {
			line = i
			break
		}
		line = i
	}
	return document.CursorPosition{
		Paragraph: index,
		Offset:    pl.OffsetForX(line, x),
	}
}

// EnsureVisible scrolls the least distance that brings the caret line
// of a position into the viewport.
func (m *Manager) EnsureVisible(pos document.CursorPosition) {
	_, y, h, ok := m.PositionToPoint(pos)
	if !ok {
		return
	}
	top := m.scroll.ScrollOffset()
	bottom := top + m.scroll.ViewportHeight()
	switch {
	case y < top:
		m.scroll.SetScrollOffset(y)
	case y+h > bottom:
		m.scroll.SetScrollOffset(y + h - m.scroll.ViewportHeight())
	}
}

// Line Geometry
//
// These methods back caret motion: they resolve positions to wrapped
// lines and back without the caller touching layouts directly.

// LineIndex returns the wrapped line a position sits on within its
// paragraph.
func (m *Manager) LineIndex(pos document.CursorPosition) int {
	pl := m.Layout(pos.Paragraph)
	if pl == nil {
		return 0
	}
	return pl.LineForOffset(pos.Offset)
}

// LineCount returns the number of wrapped lines in a paragraph.
func (m *Manager) LineCount(paragraph int) int {
	pl := m.Layout(paragraph)
	if pl == nil {
		return 0
	}
	return pl.LineCount()
}

// PositionAt returns the position on a paragraph's line nearest the
// horizontal coordinate x.
func (m *Manager) PositionAt(paragraph, line int, x float64) document.CursorPosition {
	pl := m.Layout(paragraph)
	if pl == nil {
		return document.CursorPosition{}
	}
	return document.CursorPosition{
		Paragraph: paragraph,
		Offset:    pl.OffsetForX(line, x),
	}
}

// CaretX returns a position's horizontal coordinate on its line.
func (m *Manager) CaretX(pos document.CursorPosition) float64 {
	pl := m.Layout(pos.Paragraph)
	if pl == nil {
		return 0
	}
	return pl.XForOffset(pos.Offset)
}

// PageLines returns how many lines fit in the viewport, at least one.
func (m *Manager) PageLines() int {
	n := int(m.scroll.ViewportHeight() / m.metrics.LineHeight())
	if n < 1 {
		n = 1
	}
	return n
}

// Observer Wiring

// ParagraphInserted implements document.Observer.
func (m *Manager) ParagraphInserted(index int) {
	m.scroll.InsertParagraph(index)
	m.cache.InvalidateFrom(index)
}

// ParagraphRemoved implements document.Observer.
func (m *Manager) ParagraphRemoved(index int) {
	m.scroll.RemoveParagraph(index)
	m.cache.InvalidateFrom(index)
}

// ParagraphModified implements document.Observer.
func (m *Manager) ParagraphModified(index int) {
	m.scroll.InvalidateParagraph(index)
	m.cache.Invalidate(index)
}

// ContentChanged implements document.Observer.
func (m *Manager) ContentChanged() {}
