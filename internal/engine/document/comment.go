package document

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an annotation anchored to a character range of one
// paragraph. Positions are paragraph-relative rune offsets, half-open.
type Comment struct {
	ID        string
	Start     int
	End       int
	Author    string
	Text      string
	CreatedAt time.Time
	Resolved  bool
}

// NewComment creates a comment over [start, end) with a fresh id and
// the current time.
func NewComment(start, end int, author, text string) Comment {
	return Comment{
		ID:        newCommentID(),
		Start:     start,
		End:       end,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

func newCommentID() string {
	return "c-" + uuid.NewString()
}

// Contains reports whether the comment's range covers the offset.
func (c Comment) Contains(offset int) bool {
	return offset >= c.Start && offset < c.End
}

// shift adjusts the comment range for an insertion of n runes at
// offset, growing the range when the insertion lands inside it.
func (c Comment) shift(offset, n int) Comment {
	if offset <= c.Start {
		c.Start += n
		c.End += n
	} else if offset < c.End {
		c.End += n
	}
	return c
}

// contract adjusts the comment range for a deletion of [start, end),
// clamping endpoints that fall inside the deleted span. Returns the
// adjusted comment and whether it still covers any text.
func (c Comment) contract(start, end int) (Comment, bool) {
	n := end - start
	switch {
	case end <= c.Start:
		c.Start -= n
		c.End -= n
	case start >= c.End:
		// untouched
	default:
		if c.Start > start {
			c.Start = start
		}
		if c.End > end {
			c.End -= n
		} else {
			c.End = start
		}
	}
	return c, c.End > c.Start
}
