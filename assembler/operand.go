package assembler

import (
	"strconv"

	"github.com/asmod-lang/asmodeus-sub000/encoding"
	"github.com/asmod-lang/asmodeus-sub000/lexer"
	"github.com/asmod-lang/asmodeus-sub000/parser"
)

// resolveValue resolves a Direct/Indirect/MultipleIndirect/Indexed
// value: a defined symbol's address, or a parsed number. A value that
// reads as an identifier rather than a numeric literal and has no
// matching symbol is an undefined-symbol error; a value that reads as
// a numeric literal but fails to parse is an invalid-number error.
func resolveValue(value string, symtab *SymbolTable, pos lexer.Position) (uint16, error) {
	if sym, ok := symtab.Lookup(value); ok {
		return sym.Address, nil
	}
	if looksNumeric(value) {
		n, err := parseNumber(value)
		if err != nil {
			return 0, newError(pos, ErrorInvalidNumber, "invalid number "+value)
		}
		return uint16(n), nil
	}
	return 0, newError(pos, ErrorUndefinedSymbol, "undefined symbol "+value)
}

func parseRegister(value string, pos lexer.Position) (uint16, error) {
	if len(value) < 2 || (value[0] != 'R' && value[0] != 'r') {
		return 0, newError(pos, ErrorInvalidAddressingMode, "invalid register "+value)
	}
	n, err := strconv.Atoi(value[1:])
	if err != nil {
		return 0, newError(pos, ErrorInvalidAddressingMode, "invalid register "+value)
	}
	return uint16(n), nil
}

// checkArg verifies n fits the 8-bit argument field.
func checkArg(n int64, pos lexer.Position) (uint8, error) {
	if n < 0 || n > 255 {
		return 0, newError(pos, ErrorAddressOutOfBounds, "argument exceeds the 8-bit field")
	}
	return uint8(n), nil
}

// resolveOperand computes the addressing-mode tag and 8-bit argument
// field for op at the instruction located at address. A nil op is a
// no-operand instruction, encoded direct with a zero argument.
func resolveOperand(op *parser.Operand, symtab *SymbolTable, address uint16, pos lexer.Position) (encoding.Mode, uint8, error) {
	if op == nil {
		return encoding.ModeDirect, 0, nil
	}

	switch op.Mode {
	case parser.ModeImmediate:
		n, err := parseNumber(op.Value)
		if err != nil {
			return 0, 0, newError(pos, ErrorInvalidNumber, "invalid number "+op.Value)
		}
		arg, err := checkArg(n, pos)
		return encoding.ModeImmediate, arg, err

	case parser.ModeDirect:
		v, err := resolveValue(op.Value, symtab, pos)
		if err != nil {
			return 0, 0, err
		}
		arg, err := checkArg(int64(v), pos)
		return encoding.ModeDirect, arg, err

	case parser.ModeIndirect:
		v, err := resolveValue(op.Value, symtab, pos)
		if err != nil {
			return 0, 0, err
		}
		arg, err := checkArg(int64(v), pos)
		return encoding.ModeIndirect, arg, err

	case parser.ModeMultipleIndirect:
		v, err := resolveValue(op.Value, symtab, pos)
		if err != nil {
			return 0, 0, err
		}
		arg, err := checkArg(int64(v), pos)
		return encoding.ModeMultipleIndirect, arg, err

	case parser.ModeIndexed:
		// The index sub-expression is cosmetic at this layer; only the
		// base resolves, emitted as a direct reference.
		v, err := resolveValue(op.Value, symtab, pos)
		if err != nil {
			return 0, 0, err
		}
		arg, err := checkArg(int64(v), pos)
		return encoding.ModeDirect, arg, err

	case parser.ModeRegister:
		reg, err := parseRegister(op.Value, pos)
		if err != nil {
			return 0, 0, err
		}
		arg, err := checkArg(int64(reg), pos)
		return encoding.ModeRegister, arg, err

	case parser.ModeRegisterIndirect:
		reg, err := parseRegister(op.Value, pos)
		if err != nil {
			return 0, 0, err
		}
		arg, err := checkArg(int64(reg), pos)
		return encoding.ModeRegisterIndirect, arg, err

	case parser.ModeBaseRegister:
		reg, err := parseRegister(op.Value, pos)
		if err != nil {
			return 0, 0, err
		}
		offset, err := parseNumber(op.Extra)
		if err != nil {
			return 0, 0, newError(pos, ErrorInvalidNumber, "invalid offset "+op.Extra)
		}
		packed := int64(reg)<<6 | offset&0b111111
		arg, err := checkArg(packed, pos)
		return encoding.ModeBaseRegister, arg, err

	case parser.ModeRelative:
		offset, err := parseNumber(op.Value)
		if err != nil {
			return 0, 0, newError(pos, ErrorInvalidNumber, "invalid offset "+op.Value)
		}
		target := int64(address) + offset
		if target < 0 || target >= 2048 {
			return 0, 0, newError(pos, ErrorAddressOutOfBounds, "relative target out of range")
		}
		if offset < -128 || offset > 127 {
			return 0, 0, newError(pos, ErrorAddressOutOfBounds, "relative offset does not fit in 8 bits")
		}
		return encoding.ModeRelative, uint8(int8(offset)), nil

	default:
		return 0, 0, newError(pos, ErrorInvalidAddressingMode, "unsupported addressing mode")
	}
}
