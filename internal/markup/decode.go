package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/inkstone/internal/engine/document"
	"github.com/dshills/inkstone/internal/engine/element"
)

// syntheticRoot wraps the input so bare-paragraph shorthand (one or
// more <p> elements with no <document> envelope) parses as a single
// well-formed tree.
const syntheticRoot = "_root"

var syntheticPrefix = "<" + syntheticRoot + ">"

// Decode reads a markup document from r.
func Decode(r io.Reader) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeString(string(data))
}

// DecodeString parses a markup document. Input may be a full
// <document> envelope or bare paragraph shorthand. Unknown elements
// are skipped; malformed input yields a *ParseError with the line and
// column of the failure.
func DecodeString(src string) (*document.Document, error) {
	wrapped := syntheticPrefix + src + "</" + syntheticRoot + ">"
	d := &decoder{
		dec:    xml.NewDecoder(strings.NewReader(wrapped)),
		src:    src,
		prefix: len(syntheticPrefix),
	}
	return d.document()
}

type decoder struct {
	dec    *xml.Decoder
	src    string
	prefix int // synthetic wrapper bytes to subtract from offsets
}

// errorf builds a ParseError at the decoder's current input position.
func (d *decoder) errorf(err error, format string, args ...any) error {
	off := int(d.dec.InputOffset()) - d.prefix
	if off < 0 {
		off = 0
	}
	if off > len(d.src) {
		off = len(d.src)
	}
	line, col := 1, 1
	for i := 0; i < off; i++ {
		if d.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &ParseError{
		Msg:  fmt.Sprintf(format, args...),
		Line: line,
		Col:  col,
		Err:  err,
	}
}

func (d *decoder) document() (*document.Document, error) {
	doc := document.Empty()
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, d.errorf(err, "malformed markup: %v", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case syntheticRoot, "document":
			// descend
		case "p":
			p, err := d.paragraph(se)
			if err != nil {
				return nil, err
			}
			doc.AddParagraph(p)
		default:
			if err := d.dec.Skip(); err != nil {
				return nil, d.errorf(err, "malformed %s element: %v", se.Name.Local, err)
			}
		}
	}
	doc.ClearModified()
	return doc, nil
}

func (d *decoder) paragraph(se xml.StartElement) (*document.Paragraph, error) {
	p := document.NewParagraph(attr(se, "style"))
	p.SetAlignment(document.ParseAlignment(attr(se, "align")))

	var elems []*element.Element
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.errorf(err, "unterminated paragraph: %v", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(t) > 0 {
				elems = append(elems, element.NewTextRun(string(t)))
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "comments":
				if err := d.comments(p); err != nil {
					return nil, err
				}
			default:
				child, err := d.inline(t)
				if err != nil {
					return nil, err
				}
				if child != nil {
					elems = append(elems, child)
				}
			}
		case xml.EndElement:
			p.SetElements(element.Normalize(elems))
			return p, nil
		}
	}
}

// inline parses one inline element: a styled text run, a formatting
// container, or something unknown (skipped, returning nil).
func (d *decoder) inline(se xml.StartElement) (*element.Element, error) {
	if se.Name.Local == "t" {
		text, err := d.charData(se.Name.Local)
		if err != nil {
			return nil, err
		}
		return element.NewStyledTextRun(text, attr(se, "style")), nil
	}
	kind, ok := element.KindForTag(se.Name.Local)
	if !ok {
		if err := d.dec.Skip(); err != nil {
			return nil, d.errorf(err, "malformed %s element: %v", se.Name.Local, err)
		}
		return nil, nil
	}
	container := element.NewContainer(kind)
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.errorf(err, "unterminated %s element: %v", se.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(t) > 0 {
				container.AppendChild(element.NewTextRun(string(t)))
			}
		case xml.StartElement:
			child, err := d.inline(t)
			if err != nil {
				return nil, err
			}
			container.AppendChild(child)
		case xml.EndElement:
			return container, nil
		}
	}
}

// charData collects the text content of an element that should hold
// only character data, skipping any stray children.
func (d *decoder) charData(name string) (string, error) {
	var b strings.Builder
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return "", d.errorf(err, "unterminated %s element: %v", name, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			if err := d.dec.Skip(); err != nil {
				return "", d.errorf(err, "malformed %s element: %v", t.Name.Local, err)
			}
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

func (d *decoder) comments(p *document.Paragraph) error {
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return d.errorf(err, "unterminated comments block: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "comment" {
				if err := d.dec.Skip(); err != nil {
					return d.errorf(err, "malformed %s element: %v", t.Name.Local, err)
				}
				continue
			}
			c, err := d.comment(t)
			if err != nil {
				return err
			}
			p.RestoreComment(c)
		case xml.EndElement:
			return nil
		}
	}
}

func (d *decoder) comment(se xml.StartElement) (document.Comment, error) {
	var c document.Comment
	c.ID = attr(se, "id")
	c.Author = attr(se, "author")
	c.Resolved = attr(se, "resolved") == "true"

	var err error
	if c.Start, err = strconv.Atoi(attr(se, "start")); err != nil {
		return c, d.errorf(err, "comment start %q is not a number", attr(se, "start"))
	}
	if c.End, err = strconv.Atoi(attr(se, "end")); err != nil {
		return c, d.errorf(err, "comment end %q is not a number", attr(se, "end"))
	}
	if created := attr(se, "created"); created != "" {
		// tolerate unparseable timestamps, keeping the zero time
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			c.CreatedAt = ts
		}
	}
	text, err := d.charData("comment")
	if err != nil {
		return c, err
	}
	c.Text = text
	return c, nil
}

// Table Fragments

// DecodeTableString parses a standalone <table> fragment.
func DecodeTableString(src string) (*document.Table, error) {
	d := &decoder{
		dec: xml.NewDecoder(strings.NewReader(src)),
		src: src,
	}
	// no synthetic wrapper for fragments
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			return nil, d.errorf(err, "no table element found")
		}
		if err != nil {
			return nil, d.errorf(err, "malformed markup: %v", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "table" {
				return nil, d.errorf(nil, "expected table element, found %s", se.Name.Local)
			}
			return d.table(se)
		}
	}
}

func (d *decoder) table(se xml.StartElement) (*document.Table, error) {
	t := document.NewTable(attr(se, "style"))
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.errorf(err, "unterminated table: %v", err)
		}
		switch tk := tok.(type) {
		case xml.StartElement:
			if tk.Name.Local != "tr" {
				if err := d.dec.Skip(); err != nil {
					return nil, d.errorf(err, "malformed %s element: %v", tk.Name.Local, err)
				}
				continue
			}
			row := t.AddRow()
			if err := d.tableRow(row); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return t, nil
		}
	}
}

func (d *decoder) tableRow(row *document.TableRow) error {
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return d.errorf(err, "unterminated table row: %v", err)
		}
		switch tk := tok.(type) {
		case xml.StartElement:
			header := tk.Name.Local == "th"
			if !header && tk.Name.Local != "td" {
				if err := d.dec.Skip(); err != nil {
					return d.errorf(err, "malformed %s element: %v", tk.Name.Local, err)
				}
				continue
			}
			cell, err := d.tableCell(tk, header)
			if err != nil {
				return err
			}
			row.AddCell(cell)
		case xml.EndElement:
			return nil
		}
	}
}

func (d *decoder) tableCell(se xml.StartElement, header bool) (*document.TableCell, error) {
	cell := &document.TableCell{
		Content: document.NewParagraph(""),
		Header:  header,
		ColSpan: spanAttr(se, "colspan"),
		RowSpan: spanAttr(se, "rowspan"),
	}
	var elems []*element.Element
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.errorf(err, "unterminated table cell: %v", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(t) > 0 {
				elems = append(elems, element.NewTextRun(string(t)))
			}
		case xml.StartElement:
			child, err := d.inline(t)
			if err != nil {
				return nil, err
			}
			if child != nil {
				elems = append(elems, child)
			}
		case xml.EndElement:
			cell.Content.SetElements(element.Normalize(elems))
			return cell, nil
		}
	}
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func spanAttr(se xml.StartElement, name string) int {
	v := attr(se, name)
	if v == "" {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// IsParseError reports whether err is a markup parse error and returns
// it typed when so.
func IsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
