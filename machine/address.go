package machine

import "github.com/asmod-lang/asmodeus-sub000/encoding"

// location is an operand's resolved storage: either a register or a
// memory address. Immediate operands resolve to neither and are
// handled directly by their callers.
type location struct {
	isRegister bool
	reg        uint8
	addr       uint16
}

// resolveLocation computes where an operand's data lives, re-deriving
// the 8-bit argument field from arg8 as each addressing mode requires.
// Immediate has no location and is rejected here.
func (m *Machine) resolveLocation(mode encoding.Mode, arg8 uint8) (location, error) {
	switch mode {
	case encoding.ModeDirect:
		return location{addr: uint16(arg8)}, nil

	case encoding.ModeIndirect:
		return location{addr: m.Memory[arg8]}, nil

	case encoding.ModeMultipleIndirect:
		addr2 := m.Memory[arg8]
		if int(addr2) >= MemorySize {
			return location{}, newError(m.L, ErrorAddressOutOfBounds, "indirect address out of range")
		}
		return location{addr: m.Memory[addr2]}, nil

	case encoding.ModeRegister:
		return location{isRegister: true, reg: arg8 & 0b111}, nil

	case encoding.ModeRegisterIndirect:
		reg := arg8 & 0b111
		return location{addr: m.Registers[reg]}, nil

	case encoding.ModeBaseRegister:
		reg := (arg8 >> 6) & 0b111
		offset := arg8 & 0b111111
		return location{addr: m.Registers[reg] + uint16(offset)}, nil

	case encoding.ModeRelative:
		target := int(m.L) + int(int8(arg8))
		if target < 0 || target >= MemorySize {
			return location{}, newError(m.L, ErrorAddressOutOfBounds, "relative address out of range")
		}
		return location{addr: uint16(target)}, nil

	case encoding.ModeImmediate:
		return location{}, newError(m.L, ErrorInvalidAddressingMode, "immediate operand has no location")

	default:
		return location{}, newError(m.L, ErrorInvalidAddressingMode, "unsupported addressing mode")
	}
}

func (m *Machine) readAt(loc location) (uint16, error) {
	if loc.isRegister {
		return m.Registers[loc.reg], nil
	}
	if int(loc.addr) >= MemorySize {
		return 0, newError(m.L, ErrorAddressOutOfBounds, "memory read out of range")
	}
	return m.Memory[loc.addr], nil
}

func (m *Machine) writeAt(loc location, value uint16) error {
	if loc.isRegister {
		m.Registers[loc.reg] = value
		return nil
	}
	if int(loc.addr) >= MemorySize {
		return newError(m.L, ErrorAddressOutOfBounds, "memory write out of range")
	}
	m.Memory[loc.addr] = value
	return nil
}

// readOperand resolves an operand's value for arithmetic/load opcodes.
func (m *Machine) readOperand(mode encoding.Mode, arg8 uint8) (uint16, error) {
	if mode == encoding.ModeImmediate {
		return uint16(arg8), nil
	}
	loc, err := m.resolveLocation(mode, arg8)
	if err != nil {
		return 0, err
	}
	return m.readAt(loc)
}

// storeOperand writes value to an operand's location for STORE.
// Immediate is not a valid store destination.
func (m *Machine) storeOperand(mode encoding.Mode, arg8 uint8, value uint16) error {
	if mode == encoding.ModeImmediate {
		return newError(m.L, ErrorInvalidAddressingMode, "cannot store to an immediate operand")
	}
	loc, err := m.resolveLocation(mode, arg8)
	if err != nil {
		return err
	}
	return m.writeAt(loc, value)
}

// jumpTarget is SOB/SOM/SOZ's branch target: L <- AD & 0x07FF, taking
// the argument field verbatim with no addressing-mode indirection.
// Unlike ADD/SUB/LOAD/STORE/MUL/DIV/REM, control-flow instructions
// never resolve an effective address through mode/register/memory
// dereferencing; the addressing-mode tag bits are not consulted.
func (m *Machine) jumpTarget(arg8 uint8) uint16 {
	return uint16(arg8) & 0x07FF
}
