package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks a token the lexer could not classify; a diagnostic was reported.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident

	KwFn       // fn
	KwLet      // let
	KwMut      // mut
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwLoop     // loop
	KwFor      // for
	KwIn       // in
	KwMatch    // match
	KwReturn   // return
	KwBreak    // break
	KwContinue // continue
	KwStruct   // struct
	KwEnum     // enum
	KwTrue     // true
	KwFalse    // false

	IntLit
	FloatLit
	StringLit

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	AndAnd        // &&
	OrOr          // ||
	Pipe          // |
	Amp           // &
	Colon         // :
	ColonColon    // ::
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	DotDot        // ..
	Arrow         // ->
	FatArrow      // =>
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
	Underscore    // _

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	KwFn:          "fn",
	KwLet:         "let",
	KwMut:         "mut",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwLoop:        "loop",
	KwFor:         "for",
	KwIn:          "in",
	KwMatch:       "match",
	KwReturn:      "return",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwStruct:      "struct",
	KwEnum:        "enum",
	KwTrue:        "true",
	KwFalse:       "false",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	Pipe:          "|",
	Amp:           "&",
	Colon:         ":",
	ColonColon:    "::",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	DotDot:        "..",
	Arrow:         "->",
	FatArrow:      "=>",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Underscore:    "_",
}

// String returns the lexeme for fixed tokens and a class name otherwise.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}
