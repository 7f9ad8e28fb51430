package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkstone/internal/engine/document"
	"github.com/dshills/inkstone/internal/layout"
)

var testMetrics = layout.FixedMetrics{CharWidth: 10, Height: 20}

func testManager(t *testing.T, texts ...string) (*Manager, *document.Document) {
	t.Helper()
	doc := document.Empty()
	for _, s := range texts {
		doc.AddParagraph(document.NewParagraphWithText("", s))
	}
	m := NewManager(doc, testMetrics, Options{EstimatedLineHeight: 16, BufferParagraphs: 1})
	m.SetSize(80, 100)
	return m, doc
}

func TestRenderPlanMeasuresHeights(t *testing.T) {
	m, _ := testManager(t, "aaa bbb ccc", "x", "")
	plan := m.RenderPlan()
	require.Len(t, plan, 3)

	// "aaa bbb ccc" wraps to two lines at width 80
	assert.Equal(t, 0, plan[0].Index)
	assert.Equal(t, 0.0, plan[0].Y)
	assert.Equal(t, 2, plan[0].Layout.LineCount())

	assert.Equal(t, 40.0, plan[1].Y, "measured height of paragraph 0 positions paragraph 1")
	assert.Equal(t, 60.0, plan[2].Y)
	assert.Equal(t, 80.0, m.Scroll().TotalHeight())
}

func TestRenderPlanWindowsLargeDocuments(t *testing.T) {
	texts := make([]string, 200)
	for i := range texts {
		texts[i] = "word"
	}
	m, _ := testManager(t, texts...)
	m.Scroll().SetScrollOffset(0)
	plan := m.RenderPlan()
	require.NotEmpty(t, plan)
	assert.Less(t, len(plan), 20, "plan should cover a window, not the whole document")
	assert.Equal(t, 0, plan[0].Index)
	for i := 1; i < len(plan); i++ {
		assert.Equal(t, plan[i-1].Index+1, plan[i].Index, "plan must be contiguous")
	}
}

func TestPositionToPoint(t *testing.T) {
	m, _ := testManager(t, "aaa bbb ccc", "x")
	m.RenderPlan()

	x, y, h, ok := m.PositionToPoint(document.CursorPosition{Paragraph: 0, Offset: 2})
	require.True(t, ok)
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, 20.0, h)

	// offset 9 is on the wrapped second line
	x, y, _, ok = m.PositionToPoint(document.CursorPosition{Paragraph: 0, Offset: 9})
	require.True(t, ok)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)

	x, y, _, ok = m.PositionToPoint(document.CursorPosition{Paragraph: 1, Offset: 1})
	require.True(t, ok)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 40.0, y)

	_, _, _, ok = m.PositionToPoint(document.CursorPosition{Paragraph: 9, Offset: 0})
	assert.False(t, ok)
}

func TestPointToPosition(t *testing.T) {
	m, _ := testManager(t, "aaa bbb ccc", "x")
	m.RenderPlan()

	pos := m.PointToPosition(20, 5)
	assert.Equal(t, document.CursorPosition{Paragraph: 0, Offset: 2}, pos)

	pos = m.PointToPosition(10, 25)
	assert.Equal(t, document.CursorPosition{Paragraph: 0, Offset: 9}, pos)

	pos = m.PointToPosition(0, 45)
	assert.Equal(t, document.CursorPosition{Paragraph: 1, Offset: 0}, pos)
}

func TestManagerTracksEdits(t *testing.T) {
	m, doc := testManager(t, "short", "tail")
	m.RenderPlan()
	require.Equal(t, 40.0, m.Scroll().TotalHeight())

	// growing paragraph 0 to two lines moves paragraph 1 down
	err := doc.InsertText(document.CursorPosition{Paragraph: 0, Offset: 5}, " wraps")
	require.NoError(t, err)
	m.RenderPlan()
	assert.Equal(t, 2, m.Layout(0).LineCount())
	assert.Equal(t, 40.0, m.Scroll().ParagraphY(1))

	doc.AddParagraph(document.NewParagraphWithText("", "new"))
	assert.Equal(t, 3, m.Scroll().ParagraphCount())

	require.NoError(t, doc.RemoveParagraph(0))
	assert.Equal(t, 2, m.Scroll().ParagraphCount())
	m.RenderPlan()
	assert.Equal(t, "tail", doc.ParagraphAt(0).PlainText())
	assert.Equal(t, 0.0, m.Scroll().ParagraphY(0))
}

func TestEnsureVisible(t *testing.T) {
	texts := make([]string, 50)
	for i := range texts {
		texts[i] = "line"
	}
	m, _ := testManager(t, texts...)
	m.RenderPlan()

	m.EnsureVisible(document.CursorPosition{Paragraph: 30, Offset: 0})
	top := m.Scroll().ScrollOffset()
	assert.Greater(t, top, 0.0)
	y := m.Scroll().ParagraphY(30)
	assert.True(t, y >= top && y+20 <= top+100, "target line inside the viewport")

	m.EnsureVisible(document.CursorPosition{Paragraph: 0, Offset: 0})
	assert.Equal(t, 0.0, m.Scroll().ScrollOffset())
}

func TestSetSizePurgesOnWidthChange(t *testing.T) {
	m, _ := testManager(t, "aaa bbb ccc")
	m.RenderPlan()
	require.Equal(t, 2, m.Layout(0).LineCount())

	m.SetSize(200, 100)
	m.RenderPlan()
	assert.Equal(t, 1, m.Layout(0).LineCount(), "wider viewport unwraps the paragraph")
}
