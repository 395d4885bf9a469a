package assembler

import (
	"strings"

	"github.com/asmod-lang/asmodeus-sub000/lexer"
	"github.com/asmod-lang/asmodeus-sub000/parser"
)

// occupiesSlot reports whether a directive reserves one memory word.
// RST and RPA each reserve a word; every other directive (including
// NAZWA_LOKALNA, a bookkeeping-only marker) is a no-op at this layer.
func occupiesSlot(name string) bool {
	switch strings.ToUpper(name) {
	case "RST", "RPA":
		return true
	default:
		return false
	}
}

// directiveWord computes the word a RST/RPA directive emits. RST with
// no argument reserves one zeroed word; RST with an argument emits
// the sign-extended literal. RPA always emits zero.
func directiveWord(d *parser.Directive, pos lexer.Position) (uint16, error) {
	switch strings.ToUpper(d.Name) {
	case "RPA":
		return 0, nil
	case "RST":
		if len(d.Args) == 0 {
			return 0, nil
		}
		n, err := parseNumber(d.Args[0])
		if err != nil {
			return 0, newError(pos, ErrorInvalidNumber, "invalid number "+d.Args[0])
		}
		return uint16(int16(n)), nil
	default:
		return 0, nil
	}
}
