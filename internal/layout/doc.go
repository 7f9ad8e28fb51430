// Package layout computes per-paragraph line-wrapped geometry from a
// pluggable metrics provider, with an LRU cache keyed by paragraph
// revision and wrap width so unchanged paragraphs are never re-wrapped.
package layout
