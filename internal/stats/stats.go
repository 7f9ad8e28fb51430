// Package stats maintains live word, character, and paragraph counts
// for a document, plus a word frequency table. The collector observes
// the document and recomputes lazily, so bursts of edits cost one
// recount at the next read.
package stats

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/inkstone/internal/engine/document"
)

// Counts is a snapshot of document statistics.
type Counts struct {
	Words      int
	Characters int // runes, excluding paragraph separators
	Paragraphs int
}

// WordCount is one entry of the frequency table.
type WordCount struct {
	Word  string
	Count int
}

// Collector tracks document statistics. Register it with
// Document.AddObserver, or use Attach.
type Collector struct {
	doc   *document.Document
	dirty bool

	counts Counts
	freq   map[string]int
}

// Attach creates a collector and registers it on doc.
func Attach(doc *document.Document) *Collector {
	c := &Collector{doc: doc, dirty: true}
	doc.AddObserver(c)
	return c
}

// Detach unregisters the collector.
func (c *Collector) Detach() {
	c.doc.RemoveObserver(c)
}

// Counts returns current statistics, recounting if the document
// changed since the last read.
func (c *Collector) Counts() Counts {
	c.refresh()
	return c.counts
}

// TopWords returns the n most frequent words, most frequent first.
// Ties order alphabetically.
func (c *Collector) TopWords(n int) []WordCount {
	c.refresh()
	out := make([]WordCount, 0, len(c.freq))
	for w, count := range c.freq {
		out = append(out, WordCount{Word: w, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Frequency returns how often a word occurs, case-insensitively.
func (c *Collector) Frequency(word string) int {
	c.refresh()
	return c.freq[strings.ToLower(word)]
}

func (c *Collector) refresh() {
	if !c.dirty {
		return
	}
	c.counts = Counts{Paragraphs: c.doc.ParagraphCount()}
	c.freq = make(map[string]int)
	for i := 0; i < c.doc.ParagraphCount(); i++ {
		text := c.doc.ParagraphAt(i).PlainText()
		c.counts.Characters += utf8.RuneCountInString(text)
		c.countWords(text)
	}
	c.dirty = false
}

// countWords segments text into Unicode words, counting segments that
// contain at least one letter or digit.
func (c *Collector) countWords(text string) {
	state := -1
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if !isWord(word) {
			continue
		}
		c.counts.Words++
		c.freq[strings.ToLower(word)]++
	}
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Observer Wiring

// ParagraphInserted implements document.Observer.
func (c *Collector) ParagraphInserted(int) { c.dirty = true }

// ParagraphRemoved implements document.Observer.
func (c *Collector) ParagraphRemoved(int) { c.dirty = true }

// ParagraphModified implements document.Observer.
func (c *Collector) ParagraphModified(int) { c.dirty = true }

// ContentChanged implements document.Observer.
func (c *Collector) ContentChanged() {}
