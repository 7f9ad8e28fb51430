package cursor

import (
	"testing"

	"github.com/dshills/inkstone/internal/engine/document"
)

// gridGeo is a fixed-grid Geometry fake: paragraphs wrap every perLine
// runes and every rune is 10 units wide.
type gridGeo struct {
	doc     *document.Document
	perLine int
	page    int
}

func (g *gridGeo) lineOf(paragraph, offset int) int {
	line := offset / g.perLine
	if last := g.LineCount(paragraph) - 1; line > last {
		line = last
	}
	return line
}

func (g *gridGeo) LineIndex(pos document.CursorPosition) int {
	return g.lineOf(pos.Paragraph, pos.Offset)
}

func (g *gridGeo) LineCount(paragraph int) int {
	l := g.doc.ParagraphAt(paragraph).Len()
	n := l/g.perLine + 1
	if l > 0 && l%g.perLine == 0 {
		n = l / g.perLine
	}
	return n
}

func (g *gridGeo) PositionAt(paragraph, line int, x float64) document.CursorPosition {
	if last := g.LineCount(paragraph) - 1; line > last {
		line = last
	}
	if line < 0 {
		line = 0
	}
	col := int((x + 5) / 10)
	if col > g.perLine {
		col = g.perLine
	}
	offset := line*g.perLine + col
	if l := g.doc.ParagraphAt(paragraph).Len(); offset > l {
		offset = l
	}
	return document.CursorPosition{Paragraph: paragraph, Offset: offset}
}

func (g *gridGeo) CaretX(pos document.CursorPosition) float64 {
	line := g.lineOf(pos.Paragraph, pos.Offset)
	return float64(pos.Offset-line*g.perLine) * 10
}

func (g *gridGeo) PageLines() int {
	return g.page
}

func testEngine(t *testing.T, texts ...string) (*Engine, *document.Document) {
	t.Helper()
	doc := document.Empty()
	for _, s := range texts {
		doc.AddParagraph(document.NewParagraphWithText("", s))
	}
	geo := &gridGeo{doc: doc, perLine: 10, page: 3}
	return NewEngine(doc, geo), doc
}

func TestMoveRightAcrossParagraphs(t *testing.T) {
	e, _ := testEngine(t, "ab", "cd")
	e.MoveRight(false)
	e.MoveRight(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 0, Offset: 2}) {
		t.Fatalf("Position() = %v, want {0 2}", got)
	}
	e.MoveRight(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 1, Offset: 0}) {
		t.Errorf("Position() = %v, want {1 0} (crossed boundary)", got)
	}
}

func TestMoveRightAtDocumentEnd(t *testing.T) {
	e, _ := testEngine(t, "ab")
	e.MoveDocEnd(false)
	want := e.Position()
	e.MoveRight(false)
	if e.Position() != want {
		t.Errorf("MoveRight at document end moved to %v", e.Position())
	}
}

func TestMoveLeftAcrossParagraphs(t *testing.T) {
	e, _ := testEngine(t, "ab", "cd")
	e.SetPosition(document.CursorPosition{Paragraph: 1, Offset: 0})
	e.MoveLeft(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 0, Offset: 2}) {
		t.Errorf("Position() = %v, want {0 2}", got)
	}
	e.SetPosition(document.CursorPosition{Paragraph: 0, Offset: 0})
	e.MoveLeft(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 0, Offset: 0}) {
		t.Errorf("MoveLeft at document start moved to %v", got)
	}
}

func TestWordMotion(t *testing.T) {
	e, _ := testEngine(t, "one two  three")
	e.MoveWordRight(false)
	if got := e.Position().Offset; got != 4 {
		t.Errorf("first word right = %d, want 4", got)
	}
	e.MoveWordRight(false)
	if got := e.Position().Offset; got != 9 {
		t.Errorf("second word right = %d, want 9", got)
	}
	e.MoveWordRight(false)
	if got := e.Position().Offset; got != 14 {
		t.Errorf("word right past last word = %d, want 14 (paragraph end)", got)
	}
	e.MoveWordLeft(false)
	if got := e.Position().Offset; got != 9 {
		t.Errorf("word left = %d, want 9", got)
	}
	e.MoveWordLeft(false)
	e.MoveWordLeft(false)
	if got := e.Position().Offset; got != 0 {
		t.Errorf("word left to start = %d, want 0", got)
	}
}

func TestWordMotionAcrossParagraphs(t *testing.T) {
	e, _ := testEngine(t, "one", "two")
	e.SetPosition(document.CursorPosition{Paragraph: 0, Offset: 3})
	e.MoveWordRight(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 1, Offset: 0}) {
		t.Errorf("Position() = %v, want {1 0}", got)
	}
	e.MoveWordLeft(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 0, Offset: 3}) {
		t.Errorf("Position() = %v, want {0 3}", got)
	}
}

func TestMoveDownKeepsPreferredColumn(t *testing.T) {
	// 12-rune paragraph wraps at 10; the 2-rune paragraph is shorter
	// than the preferred column, the third is long again.
	e, _ := testEngine(t, "aaaaaaaaaaaa", "bb", "dddddddddd")
	e.SetPosition(document.CursorPosition{Paragraph: 0, Offset: 8})

	e.MoveDown(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 0, Offset: 12}) {
		t.Fatalf("down to wrapped line = %v, want {0 12} (clamped)", got)
	}
	e.MoveDown(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 1, Offset: 2}) {
		t.Fatalf("down to short paragraph = %v, want {1 2}", got)
	}
	e.MoveDown(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 2, Offset: 8}) {
		t.Errorf("preferred column lost: %v, want {2 8}", got)
	}
}

func TestMoveUpFromDocumentTop(t *testing.T) {
	e, _ := testEngine(t, "hello")
	e.SetPosition(document.CursorPosition{Paragraph: 0, Offset: 3})
	e.MoveUp(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 0, Offset: 0}) {
		t.Errorf("up from top line = %v, want {0 0}", got)
	}
}

func TestMoveDownAtDocumentBottom(t *testing.T) {
	e, _ := testEngine(t, "hello")
	e.SetPosition(document.CursorPosition{Paragraph: 0, Offset: 3})
	e.MoveDown(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 0, Offset: 5}) {
		t.Errorf("down from bottom line = %v, want {0 5}", got)
	}
}

func TestHorizontalMotionResetsPreferredColumn(t *testing.T) {
	e, _ := testEngine(t, "aaaaaaaaaaaa", "bb", "dddddddddd")
	e.SetPosition(document.CursorPosition{Paragraph: 0, Offset: 8})
	e.MoveDown(false)
	e.MoveDown(false) // {1 2} with preferred column 8
	e.MoveLeft(false) // {1 1}, preferred column dropped
	e.MoveDown(false)
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 2, Offset: 1}) {
		t.Errorf("Position() = %v, want {2 1} (new column from caret)", got)
	}
}

func TestLineStartEnd(t *testing.T) {
	e, _ := testEngine(t, "aaaaaaaaaaaa")
	e.SetPosition(document.CursorPosition{Paragraph: 0, Offset: 11})
	e.MoveLineStart(false)
	if got := e.Position().Offset; got != 10 {
		t.Errorf("line start = %d, want 10 (wrapped line)", got)
	}
	e.MoveLineEnd(false)
	if got := e.Position().Offset; got != 12 {
		t.Errorf("line end = %d, want 12", got)
	}
}

func TestPageMotion(t *testing.T) {
	e, _ := testEngine(t, "a", "b", "c", "d", "e", "f")
	e.MovePageDown(false)
	if got := e.Position().Paragraph; got != 3 {
		t.Errorf("page down landed on paragraph %d, want 3", got)
	}
	e.MovePageUp(false)
	if got := e.Position().Paragraph; got != 0 {
		t.Errorf("page up landed on paragraph %d, want 0", got)
	}
}

func TestSelectionExtension(t *testing.T) {
	e, _ := testEngine(t, "hello world")
	e.MoveRight(true)
	e.MoveRight(true)
	sel, ok := e.Selection()
	if !ok {
		t.Fatal("no selection after extending moves")
	}
	start, end := sel.Normalized()
	if start != (document.CursorPosition{Paragraph: 0, Offset: 0}) || end != (document.CursorPosition{Paragraph: 0, Offset: 2}) {
		t.Errorf("selection = %v..%v, want {0 0}..{0 2}", start, end)
	}

	// a plain move collapses it
	e.MoveRight(false)
	if e.HasSelection() {
		t.Error("selection survived a non-extending move")
	}
}

func TestSelectionBackward(t *testing.T) {
	e, _ := testEngine(t, "hello")
	e.SetPosition(document.CursorPosition{Paragraph: 0, Offset: 4})
	e.MoveLeft(true)
	e.MoveLeft(true)
	sel, ok := e.Selection()
	if !ok {
		t.Fatal("no selection")
	}
	start, end := sel.Normalized()
	if start.Offset != 2 || end.Offset != 4 {
		t.Errorf("selection = [%d,%d], want [2,4]", start.Offset, end.Offset)
	}
}

func TestSelectionCollapsesWhenRetraced(t *testing.T) {
	e, _ := testEngine(t, "hello")
	e.MoveRight(true)
	e.MoveLeft(true)
	if e.HasSelection() {
		t.Error("anchor == active should report no selection")
	}
}

func TestSelectAll(t *testing.T) {
	e, _ := testEngine(t, "ab", "cd")
	e.SelectAll()
	sel, ok := e.Selection()
	if !ok {
		t.Fatal("no selection")
	}
	start, end := sel.Normalized()
	if start != (document.CursorPosition{Paragraph: 0, Offset: 0}) || end != (document.CursorPosition{Paragraph: 1, Offset: 2}) {
		t.Errorf("selection = %v..%v", start, end)
	}
}

func TestSelectWord(t *testing.T) {
	e, _ := testEngine(t, "one two three")
	e.SetPosition(document.CursorPosition{Paragraph: 0, Offset: 5})
	e.SelectWord()
	sel, ok := e.Selection()
	if !ok {
		t.Fatal("no selection")
	}
	start, end := sel.Normalized()
	if start.Offset != 4 || end.Offset != 7 {
		t.Errorf("selected [%d,%d), want [4,7)", start.Offset, end.Offset)
	}
}

func TestClampAfterEdit(t *testing.T) {
	e, doc := testEngine(t, "hello world")
	e.SetPosition(document.CursorPosition{Paragraph: 0, Offset: 11})
	if err := doc.DeleteText(document.CursorPosition{Paragraph: 0, Offset: 5}, document.CursorPosition{Paragraph: 0, Offset: 11}); err != nil {
		t.Fatal(err)
	}
	e.Clamp()
	if got := e.Position(); got != (document.CursorPosition{Paragraph: 0, Offset: 5}) {
		t.Errorf("Position() after clamp = %v, want {0 5}", got)
	}
}
