package markup

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dshills/inkstone/internal/engine/document"
	"github.com/dshills/inkstone/internal/engine/element"
)

// Encode writes doc as markup to w: a <document> envelope with one
// <p> element per paragraph, each on its own line.
func Encode(w io.Writer, doc *document.Document) error {
	e := &encoder{w: w}
	e.writeString("<document>\n")
	for i := 0; i < doc.ParagraphCount(); i++ {
		e.paragraph(doc.ParagraphAt(i))
		e.writeString("\n")
	}
	e.writeString("</document>\n")
	return e.err
}

// EncodeString renders doc as markup.
func EncodeString(doc *document.Document) (string, error) {
	var b strings.Builder
	if err := Encode(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *encoder) paragraph(p *document.Paragraph) {
	e.writeString("<p")
	if p.StyleID() != "" {
		e.attr("style", p.StyleID())
	}
	if p.Alignment() != document.AlignLeft {
		e.attr("align", p.Alignment().String())
	}
	e.writeString(">")
	e.inlineSeq(p.Elements())
	e.comments(p.Comments())
	e.writeString("</p>")
}

func (e *encoder) inlineSeq(elems []*element.Element) {
	for _, el := range elems {
		e.inline(el)
	}
}

func (e *encoder) inline(el *element.Element) {
	if el.Kind() == element.Text {
		if el.StyleID() != "" {
			e.writeString("<t")
			e.attr("style", el.StyleID())
			e.writeString(">")
			e.text(el.Text())
			e.writeString("</t>")
			return
		}
		e.text(el.Text())
		return
	}
	tag := el.Kind().Tag()
	e.writeString("<" + tag + ">")
	e.inlineSeq(el.Children())
	e.writeString("</" + tag + ">")
}

func (e *encoder) comments(cs []document.Comment) {
	if len(cs) == 0 {
		return
	}
	e.writeString("<comments>")
	for _, c := range cs {
		e.writeString("<comment")
		e.attr("id", c.ID)
		e.attr("start", fmt.Sprintf("%d", c.Start))
		e.attr("end", fmt.Sprintf("%d", c.End))
		if c.Author != "" {
			e.attr("author", c.Author)
		}
		if !c.CreatedAt.IsZero() {
			e.attr("created", c.CreatedAt.Format(time.RFC3339))
		}
		if c.Resolved {
			e.attr("resolved", "true")
		}
		e.writeString(">")
		e.text(c.Text)
		e.writeString("</comment>")
	}
	e.writeString("</comments>")
}

// Table Fragments

// EncodeTableString renders a standalone <table> fragment.
func EncodeTableString(t *document.Table) (string, error) {
	var b strings.Builder
	e := &encoder{w: &b}
	e.table(t)
	if e.err != nil {
		return "", e.err
	}
	return b.String(), nil
}

func (e *encoder) table(t *document.Table) {
	e.writeString("<table")
	if t.StyleID != "" {
		e.attr("style", t.StyleID)
	}
	e.writeString(">")
	for _, row := range t.Rows {
		e.writeString("<tr>")
		for _, cell := range row.Cells {
			e.tableCell(cell)
		}
		e.writeString("</tr>")
	}
	e.writeString("</table>")
}

func (e *encoder) tableCell(c *document.TableCell) {
	tag := "td"
	if c.Header {
		tag = "th"
	}
	e.writeString("<" + tag)
	if c.ColSpan > 1 {
		e.attr("colspan", fmt.Sprintf("%d", c.ColSpan))
	}
	if c.RowSpan > 1 {
		e.attr("rowspan", fmt.Sprintf("%d", c.RowSpan))
	}
	e.writeString(">")
	if c.Content != nil {
		e.inlineSeq(c.Content.Elements())
	}
	e.writeString("</" + tag + ">")
}

func (e *encoder) attr(name, value string) {
	e.writeString(" " + name + `="` + escapeAttr(value) + `"`)
}

func (e *encoder) text(s string) {
	e.writeString(escapeText(s))
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
