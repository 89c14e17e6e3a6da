package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"let":      KwLet,
	"mut":      KwMut,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"loop":     KwLoop,
	"for":      KwFor,
	"in":       KwIn,
	"match":    KwMatch,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword reports the keyword kind for ident, if it is one.
// Ключевые слова регистрозависимые — только lowercase.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
