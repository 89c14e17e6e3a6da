// Package token defines lexical token kinds for rustle.
// Invariants:
//   - Token.Text is exactly the source text covered by Token.Span.
//   - Keywords are case-sensitive and recognised only after the whole
//     identifier has been scanned (maximal munch).
//   - EOF is a zero-width token placed at the end of the file.
//   - Comments and whitespace never reach the token stream.
package token
