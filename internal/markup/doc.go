// Package markup implements the textual serialization of documents: a
// small XML dialect with a <document> envelope, <p> paragraphs carrying
// style and align attributes, inline formatting tags (t, b, i, u, s,
// sub, sup), per-paragraph <comments> blocks, and standalone <table>
// fragments.
//
// The decoder is tolerant: bare paragraphs without an envelope are
// accepted, unknown elements are skipped. Structural failures surface
// as *ParseError values carrying the line and column of the offense.
package markup
