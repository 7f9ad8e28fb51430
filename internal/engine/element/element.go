package element

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Errors returned by element editing operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Kind identifies the variant of an inline element.
type Kind uint8

const (
	Text Kind = iota // leaf text run
	Bold
	Italic
	Underline
	Strikethrough
	Subscript
	Superscript
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	case Strikethrough:
		return "strikethrough"
	case Subscript:
		return "subscript"
	case Superscript:
		return "superscript"
	default:
		return "unknown"
	}
}

// Tag returns the markup tag name for the kind.
func (k Kind) Tag() string {
	switch k {
	case Text:
		return "t"
	case Bold:
		return "b"
	case Italic:
		return "i"
	case Underline:
		return "u"
	case Strikethrough:
		return "s"
	case Subscript:
		return "sub"
	case Superscript:
		return "sup"
	default:
		return ""
	}
}

// KindForTag maps a markup tag name to a container kind.
// Returns false for unknown tags and for "t" (text runs are parsed
// separately since they carry character data, not children).
func KindForTag(tag string) (Kind, bool) {
	switch tag {
	case "b":
		return Bold, true
	case "i":
		return Italic, true
	case "u":
		return Underline, true
	case "s":
		return Strikethrough, true
	case "sub":
		return Subscript, true
	case "sup":
		return Superscript, true
	default:
		return Text, false
	}
}

// IsContainer reports whether elements of this kind own children.
func (k Kind) IsContainer() bool {
	return k != Text
}

// KindSet is a bitmask of formatting kinds active at a position.
type KindSet uint8

// With returns the set with kind added. Text contributes nothing.
func (s KindSet) With(k Kind) KindSet {
	if k == Text {
		return s
	}
	return s | 1<<k
}

// Has reports whether kind is in the set.
func (s KindSet) Has(k Kind) bool {
	if k == Text {
		return false
	}
	return s&(1<<k) != 0
}

// Element is a node in the inline element tree: either a leaf text run
// (Kind == Text) or a formatting container owning an ordered sequence
// of child elements.
type Element struct {
	kind     Kind
	text     string // Text only
	styleID  string // optional character style, Text only
	children []*Element
}

// NewTextRun creates a leaf text run.
func NewTextRun(text string) *Element {
	return &Element{kind: Text, text: text}
}

// NewStyledTextRun creates a leaf text run carrying a character style id.
func NewStyledTextRun(text, styleID string) *Element {
	return &Element{kind: Text, text: text, styleID: styleID}
}

// NewContainer creates a formatting container owning the given children.
// The kind must be a container kind; passing Text yields an empty run.
func NewContainer(kind Kind, children ...*Element) *Element {
	if !kind.IsContainer() {
		return NewTextRun("")
	}
	return &Element{kind: kind, children: children}
}

// Kind returns the element's variant.
func (e *Element) Kind() Kind {
	return e.kind
}

// IsContainer reports whether the element owns children.
func (e *Element) IsContainer() bool {
	return e.kind.IsContainer()
}

// Text returns the text of a leaf run. Empty for containers.
func (e *Element) Text() string {
	return e.text
}

// SetText replaces the text of a leaf run. No-op for containers.
func (e *Element) SetText(text string) {
	if e.kind == Text {
		e.text = text
	}
}

// StyleID returns the character style id of a text run.
func (e *Element) StyleID() string {
	return e.styleID
}

// SetStyleID sets the character style id of a text run.
func (e *Element) SetStyleID(id string) {
	if e.kind == Text {
		e.styleID = id
	}
}

// Len returns the total rune length of the element: the length of the
// run for leaves, the sum of child lengths for containers.
func (e *Element) Len() int {
	if e.kind == Text {
		return utf8.RuneCountInString(e.text)
	}
	total := 0
	for _, c := range e.children {
		total += c.Len()
	}
	return total
}

// PlainText returns the concatenation of all descendant text.
func (e *Element) PlainText() string {
	if e.kind == Text {
		return e.text
	}
	var b strings.Builder
	for _, c := range e.children {
		b.WriteString(c.PlainText())
	}
	return b.String()
}

// ChildCount returns the number of direct children.
func (e *Element) ChildCount() int {
	return len(e.children)
}

// ChildAt returns the child at index, or nil if out of range.
func (e *Element) ChildAt(index int) *Element {
	if index < 0 || index >= len(e.children) {
		return nil
	}
	return e.children[index]
}

// Children returns the child sequence. The slice is a read-only view;
// callers must not modify it directly.
func (e *Element) Children() []*Element {
	return e.children
}

// AppendChild appends a child to a container. No-op for leaves or nil.
func (e *Element) AppendChild(child *Element) {
	if child == nil || !e.IsContainer() {
		return
	}
	e.children = append(e.children, child)
}

// RemoveChild detaches and returns the child at index, or nil.
func (e *Element) RemoveChild(index int) *Element {
	if index < 0 || index >= len(e.children) {
		return nil
	}
	child := e.children[index]
	e.children = append(e.children[:index], e.children[index+1:]...)
	return child
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	out := &Element{kind: e.kind, text: e.text, styleID: e.styleID}
	if len(e.children) > 0 {
		out.children = make([]*Element, len(e.children))
		for i, c := range e.children {
			out.children[i] = c.Clone()
		}
	}
	return out
}

// spliceText inserts text at the given rune offset of a leaf run.
// The offset must already be validated by the caller.
func (e *Element) spliceText(offset int, text string) {
	runes := []rune(e.text)
	var b strings.Builder
	b.Grow(len(e.text) + len(text))
	b.WriteString(string(runes[:offset]))
	b.WriteString(text)
	b.WriteString(string(runes[offset:]))
	e.text = b.String()
}
