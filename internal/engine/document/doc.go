// Package document holds the block-level rich-text model: paragraphs
// built from inline element sequences, the document that orders them,
// cursor positions and selections addressed in (paragraph, offset)
// coordinates, anchored comments, and the standalone table model.
//
// The model is single-threaded by contract. Mutations notify registered
// observers synchronously and bump per-paragraph revision counters that
// downstream layout caches key on.
package document
