package machine

import (
	"context"

	"github.com/asmod-lang/asmodeus-sub000/encoding"
)

func (m *Machine) push(value uint16) error {
	if m.WS == 0 {
		return newError(m.L, ErrorStackOverflow, "stack exhausted")
	}
	m.WS--
	m.Memory[m.WS] = value
	return nil
}

func (m *Machine) pop() (uint16, error) {
	if m.WS >= stackTop {
		return 0, newError(m.L, ErrorStackUnderflow, "stack empty")
	}
	value := m.Memory[m.WS]
	m.WS++
	return value, nil
}

// serviceInterrupt saves AK and L on the stack and transfers control
// to the pending interrupt vector, disabling further interrupts until
// an IRET restores them.
func (m *Machine) serviceInterrupt() error {
	vector := *m.pendingInterrupt
	m.pendingInterrupt = nil

	if err := m.push(m.AK); err != nil {
		return err
	}
	if err := m.push(m.L); err != nil {
		return err
	}
	m.InterruptsEnabled = false
	m.L = vector & 0x07FF
	return nil
}

// Step executes a single machine cycle: interrupt check, then a
// fetch-decode-execute of one instruction. It reports whether the
// machine halted as a result.
func (m *Machine) Step() (bool, error) {
	if !m.Running {
		return true, nil
	}
	if m.MaxSteps != 0 && m.Steps >= m.MaxSteps {
		return false, newError(m.L, ErrorStepBudgetExhausted, "maximum step count reached")
	}

	if m.pendingInterrupt != nil && m.InterruptsEnabled && *m.pendingInterrupt&^m.InterruptMask == *m.pendingInterrupt {
		if err := m.serviceInterrupt(); err != nil {
			return false, err
		}
		m.Steps++
		return false, nil
	}

	if int(m.L) >= MemorySize {
		return false, newError(m.L, ErrorAddressOutOfBounds, "instruction counter out of range")
	}

	word := m.Memory[m.L]
	opcode := encoding.ExtractOpcode(word)
	mode := encoding.ExtractMode(word)
	arg8 := encoding.ExtractArg8(word)
	m.KOD = uint16(opcode)
	m.AD = uint16(arg8)
	m.L = (m.L + 1) & 0x07FF

	if opcode >= encoding.ExtendedMin && opcode <= encoding.OpMOD && !m.Extended {
		return false, newError(m.L-1, ErrorExtendedNotEnabled, "extended instruction executed without extended mode")
	}

	halted, err := m.execute(opcode, mode, arg8)
	if err != nil {
		return false, err
	}
	m.Steps++
	return halted, nil
}

func (m *Machine) execute(opcode encoding.Opcode, mode encoding.Mode, arg8 uint8) (bool, error) {
	switch opcode {
	case encoding.OpDOD:
		v, err := m.readOperand(mode, arg8)
		if err != nil {
			return false, err
		}
		m.AK += v

	case encoding.OpODE:
		v, err := m.readOperand(mode, arg8)
		if err != nil {
			return false, err
		}
		m.AK -= v

	case encoding.OpLAD:
		if err := m.storeOperand(mode, arg8, m.AK); err != nil {
			return false, err
		}

	case encoding.OpPOB:
		v, err := m.readOperand(mode, arg8)
		if err != nil {
			return false, err
		}
		m.AK = v

	case encoding.OpSOB:
		m.L = m.jumpTarget(arg8)

	case encoding.OpSOM:
		if int16(m.AK) < 0 {
			m.L = m.jumpTarget(arg8)
		}

	case encoding.OpSOZ:
		if m.AK == 0 {
			m.L = m.jumpTarget(arg8)
		}

	case encoding.OpSTP:
		m.Running = false
		return true, nil

	case encoding.OpDNS:
		m.InterruptsEnabled = false

	case encoding.OpPZS:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		m.AK = v

	case encoding.OpSDP:
		if err := m.push(m.AK); err != nil {
			return false, err
		}

	case encoding.OpCZM:
		m.InterruptMask = 0

	case encoding.OpMSK:
		m.InterruptMask = uint16(arg8)

	case encoding.OpPWR:
		l, err := m.pop()
		if err != nil {
			return false, err
		}
		ak, err := m.pop()
		if err != nil {
			return false, err
		}
		m.L = l
		m.AK = ak
		m.InterruptsEnabled = true

	case encoding.OpWEJSCIE:
		if len(m.inputQueue) == 0 {
			return false, newError(m.L, ErrorIO, "input queue exhausted")
		}
		m.AK = m.inputQueue[0]
		m.inputQueue = m.inputQueue[1:]

	case encoding.OpWYJSCIE:
		m.outputLog = append(m.outputLog, m.AK)

	case encoding.OpMNO:
		v, err := m.readOperand(mode, arg8)
		if err != nil {
			return false, err
		}
		m.AK *= v

	case encoding.OpDZI:
		v, err := m.readOperand(mode, arg8)
		if err != nil {
			return false, err
		}
		if v == 0 {
			return false, newError(m.L, ErrorDivisionByZero, "division by zero")
		}
		m.AK /= v

	case encoding.OpMOD:
		v, err := m.readOperand(mode, arg8)
		if err != nil {
			return false, err
		}
		if v == 0 {
			return false, newError(m.L, ErrorDivisionByZero, "division by zero")
		}
		m.AK %= v

	default:
		return false, newError(m.L-1, ErrorInvalidOpcode, "unknown opcode")
	}

	return false, nil
}

// StepInstruction is Step without the halted flag, for callers that
// already track run state via Running.
func (m *Machine) StepInstruction() error {
	_, err := m.Step()
	return err
}

// Run executes until halt, a step-budget exhaustion, an error, or
// context cancellation, whichever comes first. Breakpoints are not
// consulted; use RunUntilHaltOrBreakpoint for that.
func (m *Machine) Run(ctx context.Context) error {
	for m.Running {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunSteps executes at most n cycles, stopping early on halt.
func (m *Machine) RunSteps(ctx context.Context, n uint64) error {
	for i := uint64(0); i < n && m.Running; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// BreakpointHit, when returned by RunUntilHaltOrBreakpoint, names the
// address execution stopped at without having executed it.
type BreakpointHit struct {
	Address uint16
}

func (b *BreakpointHit) Error() string {
	return "breakpoint hit"
}

// RunUntilHaltOrBreakpoint executes until halt, an armed breakpoint is
// reached (checked against the pre-fetch instruction counter), an
// error, or context cancellation.
func (m *Machine) RunUntilHaltOrBreakpoint(ctx context.Context) error {
	for m.Running {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.breakpoints[m.L] {
			return &BreakpointHit{Address: m.L}
		}
		if _, err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}
