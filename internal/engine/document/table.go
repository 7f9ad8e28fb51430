package document

// Table is a structural grid of cells. Tables are modeled and
// serialized standalone; they do not participate in paragraph flow or
// layout.
type Table struct {
	StyleID string
	Rows    []*TableRow
}

// TableRow is one row of a table.
type TableRow struct {
	Cells []*TableCell
}

// TableCell holds one paragraph of content plus span and header flags.
type TableCell struct {
	Content *Paragraph
	Header  bool
	ColSpan int
	RowSpan int
}

// NewTable creates an empty table with the given style id.
func NewTable(styleID string) *Table {
	return &Table{StyleID: styleID}
}

// NewTableCell creates a cell holding the given text.
func NewTableCell(text string) *TableCell {
	return &TableCell{
		Content: NewParagraphWithText("", text),
		ColSpan: 1,
		RowSpan: 1,
	}
}

// AddRow appends a row and returns it.
func (t *Table) AddRow() *TableRow {
	row := &TableRow{}
	t.Rows = append(t.Rows, row)
	return row
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the widest row's cell count, counting spans.
func (t *Table) ColumnCount() int {
	max := 0
	for _, row := range t.Rows {
		n := 0
		for _, c := range row.Cells {
			span := c.ColSpan
			if span < 1 {
				span = 1
			}
			n += span
		}
		if n > max {
			max = n
		}
	}
	return max
}

// AddCell appends a cell to the row and returns it.
func (r *TableRow) AddCell(cell *TableCell) *TableCell {
	r.Cells = append(r.Cells, cell)
	return cell
}
