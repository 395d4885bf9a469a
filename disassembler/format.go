// Package disassembler renders Machine W words back into assembly
// text: a naive one-line-per-word pass, and a flow-aware pass that
// distinguishes reachable code from data and synthesizes labels for
// jump targets.
package disassembler

import (
	"strconv"

	"github.com/asmod-lang/asmodeus-sub000/encoding"
)

func mnemonicFor(opcode encoding.Opcode) string {
	names, ok := encoding.Mnemonics[opcode]
	if !ok || len(names) == 0 {
		return ""
	}
	return names[0]
}

// resolveLabel looks up a symbolic name for a Direct-mode jump target.
type resolveLabel func(address uint16) (string, bool)

func operandText(mode encoding.Mode, arg uint8, resolve resolveLabel) string {
	switch mode {
	case encoding.ModeImmediate:
		return "#" + strconv.Itoa(int(arg))

	case encoding.ModeDirect:
		if resolve != nil {
			if label, ok := resolve(uint16(arg)); ok {
				return label
			}
		}
		return strconv.Itoa(int(arg))

	case encoding.ModeIndirect:
		return "[" + strconv.Itoa(int(arg)) + "]"

	case encoding.ModeMultipleIndirect:
		return "[[" + strconv.Itoa(int(arg)) + "]]"

	case encoding.ModeRegister:
		return "R" + strconv.Itoa(int(arg&0b111))

	case encoding.ModeRegisterIndirect:
		return "[R" + strconv.Itoa(int(arg&0b111)) + "]"

	case encoding.ModeBaseRegister:
		reg := (arg >> 6) & 0b111
		offset := arg & 0b111111
		return "R" + strconv.Itoa(int(reg)) + "[" + strconv.Itoa(int(offset)) + "]"

	case encoding.ModeRelative:
		off := int(int8(arg))
		if off >= 0 {
			return "+" + strconv.Itoa(off)
		}
		return strconv.Itoa(off)

	default:
		return strconv.Itoa(int(arg))
	}
}

func isBranch(opcode encoding.Opcode) bool {
	switch opcode {
	case encoding.OpSOB, encoding.OpSOM, encoding.OpSOZ:
		return true
	}
	return false
}

// renderInstruction renders one word as assembly text. A word whose
// opcode is not recognised is rendered as an RST literal, matching how
// the assembler re-creates an unrecognised/data word.
func renderInstruction(w encoding.Word, resolve resolveLabel) string {
	opcode, mode, arg := encoding.Decode(w)
	mnemonic := mnemonicFor(opcode)
	if mnemonic == "" {
		return "RST " + strconv.Itoa(int(w))
	}
	if encoding.NoOperandMnemonics[opcode] {
		return mnemonic
	}
	if isBranch(opcode) {
		// SOB/SOM/SOZ take their argument verbatim as a target
		// address; the addressing-mode tag bits are not consulted, so
		// they are rendered as a plain direct reference regardless of
		// what the tag actually encodes.
		mode = encoding.ModeDirect
	}
	return mnemonic + " " + operandText(mode, arg, resolve)
}
