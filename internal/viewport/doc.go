// Package viewport implements virtual scrolling over a document whose
// paragraph heights are only partially known. Heights begin as
// estimates and are refined to exact measurements as paragraphs are
// laid out; visibility queries run in logarithmic time so documents
// with tens of thousands of paragraphs scroll without full layout.
package viewport
