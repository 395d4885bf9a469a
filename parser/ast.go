// Package parser converts a Machine W token stream into a flat
// Program AST: an ordered sequence of ProgramElement, each carrying
// its source position for downstream diagnostics.
package parser

import "github.com/asmod-lang/asmodeus-sub000/lexer"

// AddressingMode is the syntactic form an Operand was written in.
type AddressingMode int

const (
	ModeNone AddressingMode = iota
	ModeImmediate
	ModeDirect
	ModeIndirect
	ModeMultipleIndirect
	ModeRegister
	ModeRegisterIndirect
	ModeBaseRegister
	ModeRelative
	ModeIndexed
)

func (m AddressingMode) String() string {
	switch m {
	case ModeImmediate:
		return "immediate"
	case ModeDirect:
		return "direct"
	case ModeIndirect:
		return "indirect"
	case ModeMultipleIndirect:
		return "multiple-indirect"
	case ModeRegister:
		return "register"
	case ModeRegisterIndirect:
		return "register-indirect"
	case ModeBaseRegister:
		return "base-register"
	case ModeRelative:
		return "relative"
	case ModeIndexed:
		return "indexed"
	default:
		return "none"
	}
}

// Operand is a tagged addressing-mode variant plus the raw textual
// value(s) observed in the source (e.g. "#42", "[addr]", "R3[5]").
// Value holds the primary text (the symbol/number/register); Extra
// holds the second component for BaseRegister (the offset) and
// Indexed (the index sub-expression, which the assembler ignores).
type Operand struct {
	Mode  AddressingMode
	Value string
	Extra string
}

// ProgramElement is one of Instruction, LabelDefinition, Directive,
// MacroDefinition, or MacroCall.
type ProgramElement interface {
	Position() lexer.Position
	elementNode()
}

// Instruction is an uppercase mnemonic with an optional Operand.
type Instruction struct {
	Mnemonic string
	Operand  *Operand
	Pos      lexer.Position
}

func (i *Instruction) Position() lexer.Position { return i.Pos }
func (*Instruction) elementNode()                {}

// LabelDefinition names the current assembly address.
type LabelDefinition struct {
	Name string
	Pos  lexer.Position
}

func (l *LabelDefinition) Position() lexer.Position { return l.Pos }
func (*LabelDefinition) elementNode()                {}

// Directive is a directive name with ordered positional string
// arguments (RST, RPA, NAZWA_LOKALNA; MAKRO/KONM are consumed by the
// parser into MacroDefinition rather than surfacing as a Directive).
type Directive struct {
	Name string
	Args []string
	Pos  lexer.Position
}

func (d *Directive) Position() lexer.Position { return d.Pos }
func (*Directive) elementNode()                {}

// MacroDefinition is a MAKRO...KONM block: a name, ordered parameter
// names, and a nested ordered body.
type MacroDefinition struct {
	Name       string
	Parameters []string
	Body       []ProgramElement
	Pos        lexer.Position
}

func (m *MacroDefinition) Position() lexer.Position { return m.Pos }
func (*MacroDefinition) elementNode()                 {}

// MacroCall invokes a previously defined macro with ordered arguments.
type MacroCall struct {
	Name string
	Args []string
	Pos  lexer.Position
}

func (m *MacroCall) Position() lexer.Position { return m.Pos }
func (*MacroCall) elementNode()                {}

// Program is the parser's output: a flat, ordered sequence of
// ProgramElement.
type Program struct {
	Elements []ProgramElement
}
