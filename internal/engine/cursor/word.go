package cursor

import (
	"unicode"

	"github.com/rivo/uniseg"
)

type wordSeg struct {
	start int
	end   int
	space bool
}

// segmentWords splits text into Unicode word segments with rune
// offsets, flagging whitespace-only segments.
func segmentWords(text string) []wordSeg {
	var segs []wordSeg
	offset := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		n := 0
		space := true
		for _, r := range word {
			n++
			if !unicode.IsSpace(r) {
				space = false
			}
		}
		segs = append(segs, wordSeg{start: offset, end: offset + n, space: space})
		offset += n
	}
	return segs
}

// nextWordStart returns the rune offset of the first word starting
// after offset, or the text length when there is none.
func nextWordStart(text string, offset int) int {
	segs := segmentWords(text)
	total := 0
	if n := len(segs); n > 0 {
		total = segs[n-1].end
	}
	for _, s := range segs {
		if s.start > offset && !s.space {
			return s.start
		}
	}
	return total
}

// prevWordStart returns the rune offset of the last word starting
// before offset, or zero when there is none.
func prevWordStart(text string, offset int) int {
	start := 0
	for _, s := range segmentWords(text) {
		if s.start >= offset {
			break
		}
		if !s.space {
			start = s.start
		}
	}
	return start
}

// wordAt returns the word segment covering offset, or an empty range
// at offset when it sits on whitespace.
func wordAt(text string, offset int) (start, end int) {
	for _, s := range segmentWords(text) {
		if offset >= s.start && offset < s.end {
			if s.space {
				return offset, offset
			}
			return s.start, s.end
		}
	}
	// caret at the very end selects the trailing word
	if segs := segmentWords(text); len(segs) > 0 {
		last := segs[len(segs)-1]
		if offset == last.end && !last.space {
			return last.start, last.end
		}
	}
	return offset, offset
}
