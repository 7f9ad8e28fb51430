// Package cursor implements caret and selection motion over a
// document: character, word, wrapped-line, page, and document-boundary
// movement, with selection extension and a preferred horizontal
// position that survives vertical travel through short lines.
//
// Line-level geometry comes from a Geometry implementation (in
// production the viewport manager), so the engine itself stays free of
// layout math.
package cursor
