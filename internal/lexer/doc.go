// Package lexer turns a source.File into tokens.
//
// Lexer is a pull scanner (Next/Peek) over a byte Cursor. Tokens wraps it
// into a finite iter.Seq that restarts from the beginning of the file on
// every range. Errors go to Options.Reporter; scanning always continues
// and EOF is returned forever after the end of input.
package lexer
