package viewport

import "sort"

// DefaultEstimatedLineHeight is the height assumed for paragraphs that
// have not been measured yet.
const DefaultEstimatedLineHeight = 16.0

// DefaultBufferParagraphs is how many extra paragraphs beyond the
// visible band are included in the lazy layout window on each side.
const DefaultBufferParagraphs = 5

type paraInfo struct {
	y           float64
	height      float64
	heightKnown bool
}

// VirtualScroll tracks estimated and measured paragraph heights and
// answers visibility queries by binary search, so a document with many
// thousands of paragraphs never needs full layout. Heights start as
// estimates and are replaced by exact measurements as paragraphs are
// laid out.
type VirtualScroll struct {
	paras           []paraInfo
	estimatedHeight float64
	buffer          int

	viewportHeight float64
	scrollOffset   float64
}

// NewVirtualScroll creates a scroll manager for paragraphCount
// paragraphs. Non-positive estimatedHeight or buffer fall back to the
// defaults.
func NewVirtualScroll(paragraphCount int, estimatedHeight float64, buffer int) *VirtualScroll {
	if estimatedHeight <= 0 {
		estimatedHeight = DefaultEstimatedLineHeight
	}
	if buffer < 0 {
		buffer = DefaultBufferParagraphs
	}
	v := &VirtualScroll{
		estimatedHeight: estimatedHeight,
		buffer:          buffer,
	}
	v.Reset(paragraphCount)
	return v
}

// Reset rebuilds the height table for a new paragraph count, discarding
// all measurements.
func (v *VirtualScroll) Reset(paragraphCount int) {
	if paragraphCount < 0 {
		paragraphCount = 0
	}
	v.paras = make([]paraInfo, paragraphCount)
	y := 0.0
	for i := range v.paras {
		v.paras[i] = paraInfo{y: y, height: v.estimatedHeight}
		y += v.estimatedHeight
	}
	v.clampScroll()
}

// ParagraphCount returns the number of tracked paragraphs.
func (v *VirtualScroll) ParagraphCount() int {
	return len(v.paras)
}

// TotalHeight returns the document height under current estimates.
func (v *VirtualScroll) TotalHeight() float64 {
	if len(v.paras) == 0 {
		return 0
	}
	last := v.paras[len(v.paras)-1]
	return last.y + last.height
}

// Geometry Updates

// UpdateParagraphHeight records an exact measured height for a
// paragraph and shifts every following paragraph accordingly.
func (v *VirtualScroll) UpdateParagraphHeight(index int, height float64) {
	if index < 0 || index >= len(v.paras) {
		return
	}
	delta := height - v.paras[index].height
	v.paras[index].height = height
	v.paras[index].heightKnown = true
	if delta != 0 {
		for i := index + 1; i < len(v.paras); i++ {
			v.paras[i].y += delta
		}
	}
	v.clampScroll()
}

// HeightKnown reports whether the paragraph has an exact measurement.
func (v *VirtualScroll) HeightKnown(index int) bool {
	return index >= 0 && index < len(v.paras) && v.paras[index].heightKnown
}

// ParagraphY returns the document-space top of a paragraph.
func (v *VirtualScroll) ParagraphY(index int) float64 {
	if index < 0 || index >= len(v.paras) {
		return 0
	}
	return v.paras[index].y
}

// ParagraphHeight returns the current (estimated or exact) height.
func (v *VirtualScroll) ParagraphHeight(index int) float64 {
	if index < 0 || index >= len(v.paras) {
		return 0
	}
	return v.paras[index].height
}

// Scrolling

// SetViewportHeight sets the visible band height.
func (v *VirtualScroll) SetViewportHeight(h float64) {
	if h < 0 {
		h = 0
	}
	v.viewportHeight = h
	v.clampScroll()
}

// ViewportHeight returns the visible band height.
func (v *VirtualScroll) ViewportHeight() float64 {
	return v.viewportHeight
}

// SetScrollOffset moves the top of the visible band, clamped to
// [0, MaxScrollOffset].
func (v *VirtualScroll) SetScrollOffset(y float64) {
	v.scrollOffset = y
	v.clampScroll()
}

// ScrollBy moves the visible band by dy.
func (v *VirtualScroll) ScrollBy(dy float64) {
	v.SetScrollOffset(v.scrollOffset + dy)
}

// ScrollOffset returns the top of the visible band.
func (v *VirtualScroll) ScrollOffset() float64 {
	return v.scrollOffset
}

// MaxScrollOffset returns the largest valid scroll offset.
func (v *VirtualScroll) MaxScrollOffset() float64 {
	max := v.TotalHeight() - v.viewportHeight
	if max < 0 {
		return 0
	}
	return max
}

func (v *VirtualScroll) clampScroll() {
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
	if max := v.MaxScrollOffset(); v.scrollOffset > max {
		v.scrollOffset = max
	}
}

// Visibility Queries

// ParagraphAtY returns the index of the paragraph containing the
// document-space y coordinate. Coordinates past the end clamp to the
// last paragraph; an empty document returns -1.
func (v *VirtualScroll) ParagraphAtY(y float64) int {
	if len(v.paras) == 0 {
		return -1
	}
	if y < 0 {
		return 0
	}
	// first paragraph whose bottom edge lies beyond y
	i := sort.Search(len(v.paras), func(i int) bool {
		return v.paras[i].y+v.paras[i].height > y
	})
	if i == len(v.paras) {
		return len(v.paras) - 1
	}
	return i
}

// VisibleRange returns the inclusive range of paragraphs whose
// [y, y+height) intersects the visible band. Returns (0, -1) when the
// document is empty.
func (v *VirtualScroll) VisibleRange() (first, last int) {
	if len(v.paras) == 0 {
		return 0, -1
	}
	top := v.scrollOffset
	bottom := top + v.viewportHeight
	first = v.ParagraphAtY(top)
	// last visible: first paragraph starting at or below the band bottom
	last = sort.Search(len(v.paras), func(i int) bool {
		return v.paras[i].y >= bottom
	}) - 1
	if last < first {
		last = first
	}
	return first, last
}

// BufferedRange returns VisibleRange widened by the configured buffer
// on each side, clamped to the document.
func (v *VirtualScroll) BufferedRange() (first, last int) {
	first, last = v.VisibleRange()
	if last < first {
		return first, last
	}
	first -= v.buffer
	last += v.buffer
	if first < 0 {
		first = 0
	}
	if last >= len(v.paras) {
		last = len(v.paras) - 1
	}
	return first, last
}

// EnsureParagraphVisible scrolls the least distance that brings the
// paragraph fully into the band (or its top, when taller than the
// band).
func (v *VirtualScroll) EnsureParagraphVisible(index int) {
	if index < 0 || index >= len(v.paras) {
		return
	}
	p := v.paras[index]
	switch {
	case p.y < v.scrollOffset:
		v.SetScrollOffset(p.y)
	case p.y+p.height > v.scrollOffset+v.viewportHeight:
		v.SetScrollOffset(p.y + p.height - v.viewportHeight)
		if v.scrollOffset > p.y {
			v.SetScrollOffset(p.y)
		}
	}
}

// Structural Maintenance

// InsertParagraph makes room for a new paragraph at index with an
// estimated height.
func (v *VirtualScroll) InsertParagraph(index int) {
	if index < 0 || index > len(v.paras) {
		return
	}
	y := 0.0
	if index > 0 {
		y = v.paras[index-1].y + v.paras[index-1].height
	}
	v.paras = append(v.paras, paraInfo{})
	copy(v.paras[index+1:], v.paras[index:])
	v.paras[index] = paraInfo{y: y, height: v.estimatedHeight}
	for i := index + 1; i < len(v.paras); i++ {
		v.paras[i].y += v.estimatedHeight
	}
	v.clampScroll()
}

// RemoveParagraph drops the paragraph at index and closes the gap.
func (v *VirtualScroll) RemoveParagraph(index int) {
	if index < 0 || index >= len(v.paras) {
		return
	}
	h := v.paras[index].height
	v.paras = append(v.paras[:index], v.paras[index+1:]...)
	for i := index; i < len(v.paras); i++ {
		v.paras[i].y -= h
	}
	v.clampScroll()
}

// InvalidateParagraph reverts a paragraph to its estimated height,
// pending re-measurement.
func (v *VirtualScroll) InvalidateParagraph(index int) {
	if index < 0 || index >= len(v.paras) {
		return
	}
	v.paras[index].heightKnown = false
}
