// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: severity, a stable numeric Code, a
// message, a primary source.Span and optional notes. Producers emit
// through the Reporter interface; Bag is the standard collecting
// implementation with a hard cap. Rendering lives in internal/diagfmt,
// never here.
package diag
