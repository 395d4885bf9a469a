package assembler

import "github.com/asmod-lang/asmodeus-sub000/lexer"

// SymbolKind distinguishes a label (a code/data address) from a
// variable (an RPA-reserved cell), for diagnostics only: both resolve
// the same way during operand resolution.
type SymbolKind int

const (
	SymbolLabel SymbolKind = iota
	SymbolVariable
)

// Symbol is a defined identifier's resolved address.
type Symbol struct {
	Address uint16
	Kind    SymbolKind
	Pos     lexer.Position
}

// SymbolTable is a flat identifier-to-address map. Unlike a
// multi-pass assembler that tolerates forward references during
// definition, every identifier here is defined exactly once, in
// strict address order; a second Define for the same name is always
// a duplicate-symbol error, regardless of prior references.
type SymbolTable struct {
	symbols map[string]Symbol
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol)}
}

// Define binds name to address. It fails if name is already defined.
func (t *SymbolTable) Define(name string, address uint16, kind SymbolKind, pos lexer.Position) error {
	if existing, ok := t.symbols[name]; ok {
		return newError(pos, ErrorDuplicateSymbol, "symbol "+name+" already defined at "+existing.Pos.String())
	}
	t.symbols[name] = Symbol{Address: address, Kind: kind, Pos: pos}
	return nil
}

// Lookup returns the symbol bound to name, if any.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}
