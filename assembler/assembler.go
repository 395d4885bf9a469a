package assembler

import (
	"github.com/asmod-lang/asmodeus-sub000/encoding"
	"github.com/asmod-lang/asmodeus-sub000/parser"
)

// MemorySize is the word capacity of Machine W's address space.
const MemorySize = 2048

// Assembler runs the three-pass translation from a Program to a flat
// word vector: macro expansion, symbol table construction, then
// operand resolution and code generation.
type Assembler struct {
	Extended bool
}

// New creates an Assembler. extended enables the MUL/DIV/REM tier.
func New(extended bool) *Assembler {
	return &Assembler{Extended: extended}
}

// AssembleSource lexes, parses, and assembles source text in one step.
func AssembleSource(source string, extended bool) ([]encoding.Word, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return New(extended).Assemble(prog)
}

// Assemble runs all three passes over prog.
func (a *Assembler) Assemble(prog *parser.Program) ([]encoding.Word, error) {
	expanded, err := ExpandMacros(prog)
	if err != nil {
		return nil, err
	}

	symtab, err := a.buildSymbolTable(expanded)
	if err != nil {
		return nil, err
	}

	return a.generateCode(expanded, symtab)
}

// buildSymbolTable is pass two: it walks the expanded element stream
// in address order, defining each LabelDefinition at the address it
// precedes. Instructions and slot-occupying directives advance the
// address counter by one word; other elements do not.
func (a *Assembler) buildSymbolTable(elements []parser.ProgramElement) (*SymbolTable, error) {
	symtab := newSymbolTable()
	var address uint16

	for _, el := range elements {
		switch e := el.(type) {
		case *parser.LabelDefinition:
			if err := symtab.Define(e.Name, address, SymbolLabel, e.Pos); err != nil {
				return nil, err
			}
		case *parser.Instruction:
			if address >= MemorySize {
				return nil, newError(e.Pos, ErrorMemoryOverflow, "program exceeds memory capacity")
			}
			address++
		case *parser.Directive:
			if occupiesSlot(e.Name) {
				if address >= MemorySize {
					return nil, newError(e.Pos, ErrorMemoryOverflow, "program exceeds memory capacity")
				}
				address++
			}
		}
	}
	return symtab, nil
}

// generateCode is pass three: it re-walks the expanded element stream,
// resolving each instruction's operand and emitting RST/RPA literals,
// and truncates the result to the highest address actually written.
func (a *Assembler) generateCode(elements []parser.ProgramElement, symtab *SymbolTable) ([]encoding.Word, error) {
	words := make([]encoding.Word, MemorySize)
	var address uint16
	var highest uint16

	for _, el := range elements {
		switch e := el.(type) {
		case *parser.LabelDefinition:
			continue

		case *parser.Instruction:
			opcode, err := opcodeForMnemonic(e.Mnemonic, a.Extended, e.Pos)
			if err != nil {
				return nil, err
			}
			mode, arg, err := resolveOperand(e.Operand, symtab, address, e.Pos)
			if err != nil {
				return nil, err
			}
			words[address] = encoding.Encode(opcode, mode, arg)
			address++
			highest = address

		case *parser.Directive:
			if !occupiesSlot(e.Name) {
				continue
			}
			word, err := directiveWord(e, e.Pos)
			if err != nil {
				return nil, err
			}
			words[address] = word
			address++
			highest = address
		}
	}

	return words[:highest], nil
}
