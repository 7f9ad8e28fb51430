// Package element provides the inline element tree that paragraphs are
// built from: leaf text runs and nested formatting containers (bold,
// italic, underline, strikethrough, subscript, superscript).
//
// All offsets are rune offsets relative to the plain-text projection of
// the element sequence being operated on. Editing operations work on
// ordered element sequences and keep two invariants:
//
//   - the length of an element equals the sum of its descendants' text
//     lengths
//   - zero-length elements are pruned as a side effect of edits
//
// Formatting is applied by splitting text runs exactly at range
// boundaries and wrapping the covered slice in a new container; removal
// is the inverse (unwrap, splitting partially covered containers first).
package element
