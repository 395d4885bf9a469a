package assembler

import (
	"github.com/asmod-lang/asmodeus-sub000/encoding"
	"github.com/asmod-lang/asmodeus-sub000/lexer"
)

var mnemonicToOpcode = map[string]encoding.Opcode{
	"DOD": encoding.OpDOD,
	"ODE": encoding.OpODE,
	"LAD": encoding.OpLAD, "ŁAD": encoding.OpLAD,
	"POB": encoding.OpPOB,
	"SOB": encoding.OpSOB,
	"SOM": encoding.OpSOM,
	"STP": encoding.OpSTP,
	"DNS": encoding.OpDNS,
	"PZS": encoding.OpPZS,
	"SDP": encoding.OpSDP,
	"CZM": encoding.OpCZM,
	"MSK": encoding.OpMSK,
	"PWR": encoding.OpPWR,
	"WEJSCIE": encoding.OpWEJSCIE, "WPR": encoding.OpWEJSCIE,
	"WYJSCIE": encoding.OpWYJSCIE, "WYJ": encoding.OpWYJSCIE,
	"SOZ": encoding.OpSOZ,
	"MNO": encoding.OpMNO,
	"DZI": encoding.OpDZI,
	"MOD": encoding.OpMOD,
}

// opcodeForMnemonic resolves a mnemonic to its opcode, rejecting
// extended-tier (MUL/DIV/REM) mnemonics when extended is false.
func opcodeForMnemonic(mnemonic string, extended bool, pos lexer.Position) (encoding.Opcode, error) {
	op, ok := mnemonicToOpcode[mnemonic]
	if !ok {
		return 0, newError(pos, ErrorInvalidOpcode, "unknown mnemonic "+mnemonic)
	}
	if op >= encoding.ExtendedMin && !extended {
		return 0, newError(pos, ErrorExtendedNotEnabled, "extended instruction "+mnemonic+" requires extended mode")
	}
	return op, nil
}
