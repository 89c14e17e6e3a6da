// Package parser builds the AST from a token stream.
//
// Statements and items are parsed by recursive descent, expressions by a
// precedence-climbing loop (parseBinaryExpr). The parser never stops at the
// first error: a failed statement is reported and skipped up to the next
// statement boundary. An input that ends inside open delimiters gets a single
// UnclosedDelimiter at the outermost one, and recursion deeper than
// Options.MaxNesting aborts the parse with NestingTooDeep.
package parser
