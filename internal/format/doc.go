// Package format prints an AST back to canonical source text.
//
// Output is deterministic: four-space indentation, one statement per line,
// trailing commas in multi-line lists. Parenthesised groups are kept as
// written, so printing a parsed file and parsing the result yields a
// structurally identical tree. Comments are not part of the AST and are
// not preserved.
package format
