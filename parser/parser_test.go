package parser_test

import (
	"testing"

	"github.com/asmod-lang/asmodeus-sub000/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleInstructionNoOperand(t *testing.T) {
	prog, err := parser.Parse("STP")
	require.NoError(t, err)
	require.Len(t, prog.Elements, 1)
	inst, ok := prog.Elements[0].(*parser.Instruction)
	require.True(t, ok)
	assert.Equal(t, "STP", inst.Mnemonic)
	assert.Nil(t, inst.Operand)
}

func TestParseLabelDefinition(t *testing.T) {
	prog, err := parser.Parse("message: RST 42")
	require.NoError(t, err)
	require.Len(t, prog.Elements, 2)
	label, ok := prog.Elements[0].(*parser.LabelDefinition)
	require.True(t, ok)
	assert.Equal(t, "message", label.Name)

	dir, ok := prog.Elements[1].(*parser.Directive)
	require.True(t, ok)
	assert.Equal(t, "RST", dir.Name)
	assert.Equal(t, []string{"42"}, dir.Args)
}

func TestParseOperandVariants(t *testing.T) {
	tests := []struct {
		src   string
		mode  parser.AddressingMode
		value string
		extra string
	}{
		{"POB #42", parser.ModeImmediate, "42", ""},
		{"POB [addr]", parser.ModeIndirect, "addr", ""},
		{"POB [[addr]]", parser.ModeMultipleIndirect, "addr", ""},
		{"POB R3", parser.ModeRegister, "R3", ""},
		{"POB [R3]", parser.ModeRegisterIndirect, "R3", ""},
		{"POB R3[5]", parser.ModeBaseRegister, "R3", "5"},
		{"SOM +10", parser.ModeRelative, "+10", ""},
		{"SOM -10", parser.ModeRelative, "-10", ""},
		{"POB array[i]", parser.ModeIndexed, "array", "i"},
		{"POB 42", parser.ModeDirect, "42", ""},
		{"POB label", parser.ModeDirect, "label", ""},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, err := parser.Parse(tt.src)
			require.NoError(t, err)
			require.Len(t, prog.Elements, 1)
			inst, ok := prog.Elements[0].(*parser.Instruction)
			require.True(t, ok)
			require.NotNil(t, inst.Operand)
			assert.Equal(t, tt.mode, inst.Operand.Mode)
			assert.Equal(t, tt.value, inst.Operand.Value)
			assert.Equal(t, tt.extra, inst.Operand.Extra)
		})
	}
}

func TestParseMissingOperandIsError(t *testing.T) {
	_, err := parser.Parse("POB")
	require.Error(t, err)
	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, parser.ErrorMissingOperand, perr.Kind)
}

func TestParseMacroDefinitionAndCall(t *testing.T) {
	prog, err := parser.Parse("MAKRO add2 a b\nDOD a\nDOD b\nKONM\nadd2 1 2")
	require.NoError(t, err)
	require.Len(t, prog.Elements, 2)

	def, ok := prog.Elements[0].(*parser.MacroDefinition)
	require.True(t, ok)
	assert.Equal(t, "add2", def.Name)
	assert.Equal(t, []string{"a", "b"}, def.Parameters)
	require.Len(t, def.Body, 2)

	call, ok := prog.Elements[1].(*parser.MacroCall)
	require.True(t, ok)
	assert.Equal(t, "add2", call.Name)
	assert.Equal(t, []string{"1", "2"}, call.Args)
}

func TestParseUnterminatedMacroIsError(t *testing.T) {
	_, err := parser.Parse("MAKRO foo\nDOD 1")
	require.Error(t, err)
	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, parser.ErrorUnterminatedMacro, perr.Kind)
}

func TestParseDirectiveStopsAtNextStatement(t *testing.T) {
	prog, err := parser.Parse("RST 1 2\nSTP")
	require.NoError(t, err)
	require.Len(t, prog.Elements, 2)
	dir := prog.Elements[0].(*parser.Directive)
	assert.Equal(t, []string{"1", "2"}, dir.Args)
}
