package element

import "strings"

// TotalLen returns the combined rune length of an element sequence.
func TotalLen(elems []*Element) int {
	total := 0
	for _, e := range elems {
		total += e.Len()
	}
	return total
}

// PlainText returns the concatenated plain text of an element sequence.
func PlainText(elems []*Element) string {
	var b strings.Builder
	for _, e := range elems {
		b.WriteString(e.PlainText())
	}
	return b.String()
}

// CloneAll deep-copies an element sequence.
func CloneAll(elems []*Element) []*Element {
	if len(elems) == 0 {
		return nil
	}
	out := make([]*Element, len(elems))
	for i, e := range elems {
		out[i] = e.Clone()
	}
	return out
}

// SplitAt splits an element sequence at the given rune offset, returning
// the elements before and after the split point. Text runs and containers
// straddling the offset are split exactly; zero-length fragments are not
// emitted. The offset must be within [0, TotalLen(elems)].
func SplitAt(elems []*Element, offset int) (left, right []*Element) {
	cur := 0
	for i, e := range elems {
		l := e.Len()
		end := cur + l
		switch {
		case offset >= end:
			left = append(left, e)
		case offset <= cur:
			right = append(right, elems[i:]...)
			return left, right
		default:
			before, after := e.split(offset - cur)
			if before != nil {
				left = append(left, before)
			}
			if after != nil {
				right = append(right, after)
			}
			right = append(right, elems[i+1:]...)
			return left, right
		}
		cur = end
	}
	return left, right
}

// split divides a single element at a strictly interior rune offset.
func (e *Element) split(offset int) (before, after *Element) {
	if e.kind == Text {
		runes := []rune(e.text)
		e.text = string(runes[:offset])
		return e, NewStyledTextRun(string(runes[offset:]), e.styleID)
	}
	leftKids, rightKids := SplitAt(e.children, offset)
	e.children = leftKids
	if len(leftKids) == 0 {
		before = nil
	} else {
		before = e
	}
	if len(rightKids) == 0 {
		return before, nil
	}
	return before, &Element{kind: e.kind, children: rightKids}
}

// InsertText splices text into the sequence at the given rune offset,
// locating the leaf text run containing the offset (or the nearest
// boundary). Insertion at a container boundary produces an unformatted
// run outside the container; insertion strictly inside a container keeps
// the new text formatted. Returns the updated sequence.
func InsertText(elems []*Element, offset int, text string) ([]*Element, error) {
	if offset < 0 || offset > TotalLen(elems) {
		return elems, ErrOffsetOutOfRange
	}
	if text == "" {
		return elems, nil
	}
	out, ok := insertSeq(elems, offset, text)
	if !ok {
		out = append(out, NewTextRun(text))
	}
	return out, nil
}

func insertSeq(elems []*Element, offset int, text string) ([]*Element, bool) {
	cur := 0
	for i, e := range elems {
		l := e.Len()
		end := cur + l
		// A text run absorbs insertion at either boundary; containers
		// only absorb strictly interior offsets.
		if offset < end || (offset == end && e.kind == Text) {
			local := offset - cur
			if e.kind == Text {
				e.spliceText(local, text)
				return elems, true
			}
			if local == 0 {
				out := make([]*Element, 0, len(elems)+1)
				out = append(out, elems[:i]...)
				out = append(out, NewTextRun(text))
				out = append(out, elems[i:]...)
				return out, true
			}
			e.children, _ = insertSeq(e.children, local, text)
			return elems, true
		}
		cur = end
	}
	return elems, false
}

// DeleteRange removes the runes in [start, end) from the sequence,
// pruning leaves and containers emptied by the deletion. Returns the
// updated sequence.
func DeleteRange(elems []*Element, start, end int) ([]*Element, error) {
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > TotalLen(elems) {
		return elems, ErrRangeInvalid
	}
	if start == end {
		return elems, nil
	}
	left, rest := SplitAt(elems, start)
	_, right := SplitAt(rest, end-start)
	return Normalize(append(left, right...)), nil
}

// ApplyFormat wraps the runes in [start, end) in a new container of the
// given kind, splitting text runs and containers exactly at the range
// boundaries. Returns the updated sequence.
func ApplyFormat(elems []*Element, start, end int, kind Kind) ([]*Element, error) {
	if !kind.IsContainer() {
		return elems, ErrRangeInvalid
	}
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > TotalLen(elems) {
		return elems, ErrRangeInvalid
	}
	if start == end {
		return elems, nil
	}
	left, rest := SplitAt(elems, start)
	mid, right := SplitAt(rest, end-start)
	out := append(left, NewContainer(kind, mid...))
	return append(out, right...), nil
}

// RemoveFormat unwraps containers of the given kind within [start, end),
// splitting containers that straddle the range boundaries so formatting
// outside the range is preserved. Returns the updated sequence.
func RemoveFormat(elems []*Element, start, end int, kind Kind) ([]*Element, error) {
	if !kind.IsContainer() {
		return elems, ErrRangeInvalid
	}
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > TotalLen(elems) {
		return elems, ErrRangeInvalid
	}
	if start == end {
		return elems, nil
	}
	left, rest := SplitAt(elems, start)
	mid, right := SplitAt(rest, end-start)
	mid = stripKind(mid, kind)
	out := append(left, mid...)
	return Normalize(append(out, right...)), nil
}

// stripKind hoists the children of every container of the given kind,
// recursing into other containers.
func stripKind(elems []*Element, kind Kind) []*Element {
	out := make([]*Element, 0, len(elems))
	for _, e := range elems {
		if e.kind == kind {
			out = append(out, stripKind(e.children, kind)...)
			continue
		}
		if e.IsContainer() {
			e.children = stripKind(e.children, kind)
		}
		out = append(out, e)
	}
	return out
}

// HasFormatAt reports whether the character at offset is wrapped in a
// container of the given kind (at any ancestor depth). Offsets outside
// [0, TotalLen) report false.
func HasFormatAt(elems []*Element, offset int, kind Kind) bool {
	if offset < 0 || offset >= TotalLen(elems) {
		return false
	}
	found := false
	VisitLeaves(elems, func(start, end int, active KindSet) bool {
		if offset >= start && offset < end {
			found = active.Has(kind)
			return false
		}
		return true
	})
	return found
}

// HasFormatInRange reports whether every character in [start, end) is
// wrapped in a container of the given kind. Empty or invalid ranges
// report false.
func HasFormatInRange(elems []*Element, start, end int, kind Kind) bool {
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > TotalLen(elems) || start == end {
		return false
	}
	all := true
	VisitLeaves(elems, func(ls, le int, active KindSet) bool {
		if le <= start || ls >= end {
			return true
		}
		if !active.Has(kind) {
			all = false
			return false
		}
		return true
	})
	return all
}

// VisitLeaves walks the text leaves of a sequence in document order,
// calling fn with each leaf's rune span and the set of formatting kinds
// active over it. Returning false from fn stops the walk.
func VisitLeaves(elems []*Element, fn func(start, end int, active KindSet) bool) {
	visitLeaves(elems, 0, 0, fn)
}

func visitLeaves(elems []*Element, base int, active KindSet, fn func(int, int, KindSet) bool) (int, bool) {
	cur := base
	for _, e := range elems {
		if e.kind == Text {
			l := e.Len()
			if l > 0 {
				if !fn(cur, cur+l, active) {
					return cur, false
				}
			}
			cur += l
			continue
		}
		next, cont := visitLeaves(e.children, cur, active.With(e.kind), fn)
		if !cont {
			return next, false
		}
		cur = next
	}
	return cur, true
}

// Normalize prunes zero-length leaves and empty containers and merges
// adjacent unstyled-compatible text runs, recursing into containers.
func Normalize(elems []*Element) []*Element {
	out := make([]*Element, 0, len(elems))
	for _, e := range elems {
		if e.IsContainer() {
			e.children = Normalize(e.children)
			if len(e.children) == 0 {
				continue
			}
			out = append(out, e)
			continue
		}
		if e.text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].kind == Text && out[n-1].styleID == e.styleID {
			out[n-1].text += e.text
			continue
		}
		out = append(out, e)
	}
	return out
}
