package encoding_test

import (
	"testing"

	"github.com/asmod-lang/asmodeus-sub000/encoding"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		opcode encoding.Opcode
		mode   encoding.Mode
		arg    uint8
	}{
		{"DOD direct zero", encoding.OpDOD, encoding.ModeDirect, 0},
		{"POB immediate", encoding.OpPOB, encoding.ModeImmediate, 100},
		{"SOB direct max arg", encoding.OpSOB, encoding.ModeDirect, 255},
		{"extended MNO register", encoding.OpMNO, encoding.ModeRegister, 7},
		{"relative mode", encoding.OpSOM, encoding.ModeRelative, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word := encoding.Encode(tt.opcode, tt.mode, tt.arg)
			opcode, mode, arg := encoding.Decode(word)
			assert.Equal(t, tt.opcode, opcode)
			assert.Equal(t, tt.mode, mode)
			assert.Equal(t, tt.arg, arg)
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	word := encoding.Encode(0b00001, 0b000, 100)
	assert.Equal(t, encoding.Word(0b00001<<11|0b000<<8|100), word)
}

func TestExtractHelpers(t *testing.T) {
	word := encoding.Encode(encoding.OpSOB, encoding.ModeDirect, 0xFF)
	assert.Equal(t, encoding.OpSOB, encoding.ExtractOpcode(word))
	assert.Equal(t, encoding.ModeDirect, encoding.ExtractMode(word))
	assert.Equal(t, uint8(0xFF), encoding.ExtractArg8(word))
	assert.Equal(t, uint16(0xFF), encoding.ExtractArg11(word))
}

func TestExtractArg11UsesElevenBits(t *testing.T) {
	// An 11-bit address argument spans the mode tag too; a direct-mode
	// instruction (mode 000) with an 8-bit arg coincides with the
	// 11-bit interpretation for arguments 0..255.
	word := encoding.Encode(encoding.OpSOB, encoding.ModeDirect, 200)
	assert.Equal(t, uint16(200), encoding.ExtractArg11(word))
}

func TestUnknownOpcodeNotInMnemonics(t *testing.T) {
	_, ok := encoding.Mnemonics[encoding.Opcode(0b11111)]
	assert.False(t, ok)
}

func TestNoOperandMnemonicsSet(t *testing.T) {
	assert.True(t, encoding.NoOperandMnemonics[encoding.OpSTP])
	assert.False(t, encoding.NoOperandMnemonics[encoding.OpDOD])
}
