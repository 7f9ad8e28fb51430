package layout

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/inkstone/internal/engine/document"
)

// Line is one wrapped line of a paragraph: a half-open rune range plus
// its geometry relative to the paragraph origin.
type Line struct {
	Start  int
	End    int
	Y      float64
	Height float64
	Width  float64
}

// ParagraphLayout is the line-wrapped geometry of one paragraph at a
// specific wrap width. Layouts are immutable once built; edits produce
// a new layout via the revision-keyed cache.
type ParagraphLayout struct {
	text    []rune
	metrics Metrics
	width   float64
	lines   []Line
}

// LayoutParagraph wraps the paragraph's text to the given width using
// greedy word wrapping. Word boundaries follow Unicode segmentation;
// a word wider than the wrap width breaks at grapheme boundaries. An
// empty paragraph still produces one empty line.
func LayoutParagraph(p *document.Paragraph, m Metrics, width float64) *ParagraphLayout {
	pl := &ParagraphLayout{
		text:    []rune(p.PlainText()),
		metrics: m,
		width:   width,
	}
	pl.wrap()
	return pl
}

func (pl *ParagraphLayout) wrap() {
	lh := pl.metrics.LineHeight()
	lineStart := 0
	lineWidth := 0.0
	offset := 0

	flush := func(end int) {
		pl.lines = append(pl.lines, Line{
			Start:  lineStart,
			End:    end,
			Y:      float64(len(pl.lines)) * lh,
			Height: lh,
			Width:  lineWidth,
		})
		lineStart = end
		lineWidth = 0
	}

	rest := string(pl.text)
	state := -1
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		wRunes := len([]rune(word))
		wWidth := pl.runWidth(offset, offset+wRunes)

		if lineWidth > 0 && lineWidth+wWidth > pl.width && !isSpaces(word) {
			flush(offset)
		}
		if wWidth > pl.width {
			// grapheme fallback for words wider than the wrap width
			offset, lineWidth = pl.wrapGraphemes(word, offset, lineWidth, flush)
			continue
		}
		lineWidth += wWidth
		offset += wRunes
	}
	flush(offset)
}

// wrapGraphemes fills lines grapheme by grapheme, breaking whenever the
// next cluster would overflow a non-empty line.
func (pl *ParagraphLayout) wrapGraphemes(word string, offset int, lineWidth float64, flush func(int)) (int, float64) {
	state := -1
	rest := word
	for len(rest) > 0 {
		var g string
		g, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		gRunes := len([]rune(g))
		gWidth := pl.runWidth(offset, offset+gRunes)
		if lineWidth > 0 && lineWidth+gWidth > pl.width {
			flush(offset)
			lineWidth = 0
		}
		lineWidth += gWidth
		offset += gRunes
	}
	return offset, lineWidth
}

func (pl *ParagraphLayout) runWidth(start, end int) float64 {
	w := 0.0
	for i := start; i < end; i++ {
		w += pl.metrics.RuneWidth(pl.text[i])
	}
	return w
}

func isSpaces(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return len(s) > 0
}

// Lines returns the wrapped lines. Read-only view.
func (pl *ParagraphLayout) Lines() []Line {
	return pl.lines
}

// LineCount returns the number of wrapped lines.
func (pl *ParagraphLayout) LineCount() int {
	return len(pl.lines)
}

// Height returns the paragraph's total layout height.
func (pl *ParagraphLayout) Height() float64 {
	if len(pl.lines) == 0 {
		return 0
	}
	last := pl.lines[len(pl.lines)-1]
	return last.Y + last.Height
}

// Width returns the wrap width the layout was built for.
func (pl *ParagraphLayout) Width() float64 {
	return pl.width
}

// LineForOffset returns the index of the line containing the rune
// offset. The offset equal to the paragraph length maps to the last
// line; out-of-range offsets clamp.
func (pl *ParagraphLayout) LineForOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	for i, ln := range pl.lines {
		if offset < ln.End {
			return i
		}
	}
	return len(pl.lines) - 1
}

// XForOffset returns the horizontal position of the caret slot at the
// rune offset, measured from the line start.
func (pl *ParagraphLayout) XForOffset(offset int) float64 {
	line := pl.lines[pl.LineForOffset(offset)]
	if offset > line.End {
		offset = line.End
	}
	return pl.runWidth(line.Start, offset)
}

// OffsetForX returns the rune offset on the given line nearest to the
// horizontal position x. Line indexes clamp to the valid range.
func (pl *ParagraphLayout) OffsetForX(lineIndex int, x float64) int {
	if lineIndex < 0 {
		lineIndex = 0
	}
	if lineIndex >= len(pl.lines) {
		lineIndex = len(pl.lines) - 1
	}
	line := pl.lines[lineIndex]
	w := 0.0
	for i := line.Start; i < line.End; i++ {
		rw := pl.metrics.RuneWidth(pl.text[i])
		if w+rw/2 >= x {
			return i
		}
		w += rw
	}
	return line.End
}

// CursorRect returns the caret geometry for a rune offset: x from the
// line start, y from the paragraph top, and the caret height.
func (pl *ParagraphLayout) CursorRect(offset int) (x, y, h float64) {
	line := pl.lines[pl.LineForOffset(offset)]
	return pl.XForOffset(offset), line.Y, line.Height
}
