package assembler

import (
	"strconv"

	"github.com/asmod-lang/asmodeus-sub000/parser"
)

// macroTable holds macro definitions seen so far while walking a
// Program left to right. A redefinition silently overwrites the
// earlier one, matching how later passes only ever see the table as
// of the point of use.
type macroTable struct {
	macros map[string]*parser.MacroDefinition
}

func newMacroTable() *macroTable {
	return &macroTable{macros: make(map[string]*parser.MacroDefinition)}
}

// ExpandMacros runs the macro-expansion pass: MacroDefinition elements
// are recorded and removed, and every MacroCall is replaced, in place,
// by a fresh copy of its macro body with parameters substituted. The
// result contains only Instruction, LabelDefinition, and Directive
// elements.
func ExpandMacros(prog *parser.Program) ([]parser.ProgramElement, error) {
	mt := newMacroTable()
	return mt.expandElements(prog.Elements)
}

func (mt *macroTable) expandElements(elements []parser.ProgramElement) ([]parser.ProgramElement, error) {
	var out []parser.ProgramElement
	for _, el := range elements {
		switch e := el.(type) {
		case *parser.MacroDefinition:
			mt.macros[e.Name] = e
		case *parser.MacroCall:
			expanded, err := mt.expandCall(e)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		default:
			out = append(out, el)
		}
	}
	return out, nil
}

func (mt *macroTable) expandCall(call *parser.MacroCall) ([]parser.ProgramElement, error) {
	def, ok := mt.macros[call.Name]
	if !ok {
		return nil, newError(call.Pos, ErrorMacroNotFound, "macro "+call.Name+" is not defined")
	}
	if len(call.Args) != len(def.Parameters) {
		return nil, newError(call.Pos, ErrorMacroArityMismatch, "macro "+call.Name+" expects "+strconv.Itoa(len(def.Parameters))+" argument(s), got "+strconv.Itoa(len(call.Args)))
	}

	subst := make(map[string]string, len(def.Parameters))
	for i, p := range def.Parameters {
		subst[p] = call.Args[i]
	}

	body := substituteElements(def.Body, subst)
	return mt.expandElements(body)
}

// substituteElements copies body, replacing any operand value/extra
// or directive argument that is a whole-string match for a parameter
// name with the corresponding call argument. No substring replacement
// is performed.
func substituteElements(body []parser.ProgramElement, subst map[string]string) []parser.ProgramElement {
	out := make([]parser.ProgramElement, len(body))
	for i, el := range body {
		switch e := el.(type) {
		case *parser.Instruction:
			ni := *e
			if e.Operand != nil {
				no := *e.Operand
				no.Value = substituteOne(no.Value, subst)
				no.Extra = substituteOne(no.Extra, subst)
				ni.Operand = &no
			}
			out[i] = &ni

		case *parser.Directive:
			nd := *e
			nd.Args = make([]string, len(e.Args))
			for j, a := range e.Args {
				nd.Args[j] = substituteOne(a, subst)
			}
			out[i] = &nd

		case *parser.LabelDefinition:
			nl := *e
			out[i] = &nl

		case *parser.MacroDefinition:
			out[i] = e

		case *parser.MacroCall:
			nc := *e
			nc.Args = make([]string, len(e.Args))
			for j, a := range e.Args {
				nc.Args[j] = substituteOne(a, subst)
			}
			out[i] = &nc
		}
	}
	return out
}

func substituteOne(value string, subst map[string]string) string {
	if v, ok := subst[value]; ok {
		return v
	}
	return value
}
