package symbols

// Prelude enums. Their variants are visible by bare name.
var (
	OptionDecl = &TypeDecl{
		Kind: DeclEnum,
		Name: "Option",
		Variants: []Variant{
			{Name: "Some", Arity: 1, Tuple: true},
			{Name: "None"},
		},
	}
	ResultDecl = &TypeDecl{
		Kind: DeclEnum,
		Name: "Result",
		Variants: []Variant{
			{Name: "Ok", Arity: 1, Tuple: true},
			{Name: "Err", Arity: 1, Tuple: true},
		},
	}
)

// Variant indexes of the prelude enums.
const (
	VariantSome = 0
	VariantNone = 1
	VariantOk   = 0
	VariantErr  = 1
)

// PreludeEntry describes a symbol injected before source traversal.
type PreludeEntry struct {
	Name  string
	Kind  SymbolKind
	Flags SymbolFlags
	Slot  int
	Decl  *TypeDecl
}

// builtinPreludeEntries returns the prelude enums and their bare variants.
func builtinPreludeEntries() []PreludeEntry {
	var entries []PreludeEntry
	for _, decl := range []*TypeDecl{OptionDecl, ResultDecl} {
		entries = append(entries, PreludeEntry{Name: decl.Name, Kind: SymbolEnum, Flags: SymbolFlagPrelude, Decl: decl})
		for i, v := range decl.Variants {
			entries = append(entries, PreludeEntry{Name: v.Name, Kind: SymbolVariant, Flags: SymbolFlagPrelude, Slot: i, Decl: decl})
		}
	}
	return entries
}

// BuiltinEntries turns an ordered list of builtin names into prelude entries.
// The slot of each entry is its position in names.
func BuiltinEntries(names []string, host map[string]bool) []PreludeEntry {
	entries := make([]PreludeEntry, 0, len(names))
	for i, name := range names {
		flags := SymbolFlagBuiltin
		if host[name] {
			flags |= SymbolFlagHost
		}
		entries = append(entries, PreludeEntry{Name: name, Kind: SymbolBuiltin, Flags: flags, Slot: i})
	}
	return entries
}

// mergePrelude combines default entries with user provided ones.
// Later entries win on name clashes.
func mergePrelude(custom []PreludeEntry) []PreludeEntry {
	defaults := builtinPreludeEntries()
	if len(custom) == 0 {
		return defaults
	}
	result := make([]PreludeEntry, 0, len(defaults)+len(custom))
	result = append(result, defaults...)
	result = append(result, custom...)
	return result
}
