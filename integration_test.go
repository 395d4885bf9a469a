package asmodeus

import (
	"context"
	"testing"

	"github.com/asmod-lang/asmodeus-sub000/assembler"
	"github.com/asmod-lang/asmodeus-sub000/disassembler"
	"github.com/asmod-lang/asmodeus-sub000/encoding"
	"github.com/asmod-lang/asmodeus-sub000/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSource(t *testing.T, source string) *machine.Machine {
	t.Helper()
	words, err := assembler.AssembleSource(source, false)
	require.NoError(t, err)

	m := machine.New(false)
	require.NoError(t, m.LoadProgram(words, 0))
	require.NoError(t, m.Run(context.Background()))
	return m
}

func TestSeedHello(t *testing.T) {
	m := runSource(t, "POB message\nWYJSCIE\nSTP\nmessage: RST 42")
	assert.Equal(t, []uint16{42}, m.OutputLog())
	assert.Equal(t, uint16(42), m.AK)
	assert.False(t, m.Running)
}

func TestSeedAdd(t *testing.T) {
	m := runSource(t, "POB a\nDOD b\nWYJSCIE\nSTP\na: RST 25\nb: RST 17")
	assert.Equal(t, []uint16{42}, m.OutputLog())
	assert.Equal(t, uint16(42), m.AK)
}

func TestSeedSumViaStack(t *testing.T) {
	m := runSource(t, "POB x\nSDP\nPOB y\nPZS\nDOD y\nWYJSCIE\nSTP\nx: RST 25\ny: RST 35")
	assert.Equal(t, []uint16{60}, m.OutputLog())
}

func TestSeedConditionalLoop(t *testing.T) {
	words, err := assembler.AssembleSource(
		"start: DOD one\nSOM start\nWYJSCIE\nSTP\none: RST 1", false)
	require.NoError(t, err)

	m := machine.New(false)
	require.NoError(t, m.LoadProgram(words, 0))
	m.AK = 0xFFFD // preset to -3; the loop counts up to 0 by repeated ADD 1
	require.NoError(t, m.Run(context.Background()))

	assert.Equal(t, []uint16{0}, m.OutputLog())
}

func TestSeedInterrupt(t *testing.T) {
	// Primary program at address 0: DOD a / STP, a=5 stored right after.
	main := []encoding.Word{
		encoding.Encode(encoding.OpDOD, encoding.ModeDirect, 2),
		encoding.Encode(encoding.OpSTP, encoding.ModeDirect, 0),
		5,
	}
	// Handler at address 100: DOD b / PWR, b=15 stored right after.
	handler := []encoding.Word{
		encoding.Encode(encoding.OpDOD, encoding.ModeDirect, 102),
		encoding.Encode(encoding.OpPWR, encoding.ModeDirect, 0),
		15,
	}

	words := make([]encoding.Word, 103)
	copy(words[0:], main)
	copy(words[100:], handler)

	m := machine.New(false)
	require.NoError(t, m.LoadProgram(words, 0))
	m.AK = 10
	m.InterruptsEnabled = true
	m.TriggerInterrupt(100)

	require.NoError(t, m.Run(context.Background()))

	assert.Empty(t, m.OutputLog())
	assert.Equal(t, uint16(15), m.AK)
	assert.Equal(t, uint16(2), m.L)
	assert.False(t, m.Running)
}

func TestSeedRoundTrip(t *testing.T) {
	source := "SOB end\nDOD 100\nend: STP"
	words, err := assembler.AssembleSource(source, false)
	require.NoError(t, err)

	lines := disassembler.DisassembleFlow(words, 0)
	listing := disassembler.RenderListing(lines)

	reassembled, err := assembler.AssembleSource(listing, false)
	require.NoError(t, err)
	assert.Equal(t, words, reassembled)

	original := machine.New(false)
	require.NoError(t, original.LoadProgram(words, 0))
	require.NoError(t, original.Run(context.Background()))

	rebuilt := machine.New(false)
	require.NoError(t, rebuilt.LoadProgram(reassembled, 0))
	require.NoError(t, rebuilt.Run(context.Background()))

	assert.Equal(t, original.Snapshot(), rebuilt.Snapshot())
}
