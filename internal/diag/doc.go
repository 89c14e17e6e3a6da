// Package diag defines the diagnostic model shared by every pipeline stage.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – Info, Warning or Error.
//   - Code – stable numeric identifier (codes.go). The numeric range encodes
//     the stage that produced it: 1xxx lexer, 2xxx parser, 3xxx resolver,
//     4xxx runtime.
//   - Message – short human text.
//   - Primary – the source.Span the diagnostic points at.
//   - Notes – optional secondary spans with additional context.
//
// # Emitting diagnostics
//
// Stages receive a Reporter and never know where diagnostics end up.
// BagReporter collects into a Bag; DedupReporter filters repeats. A stage
// that needs notes builds the record with ReportError(...).WithNote(...).Emit().
//
// Package diag does no formatting; rendering lives in internal/diagfmt.
package diag
