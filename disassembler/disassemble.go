package disassembler

import (
	"strings"

	"github.com/asmod-lang/asmodeus-sub000/encoding"
)

// Line is one rendered address of a disassembly listing.
type Line struct {
	Address uint16
	Label   string
	Text    string
	IsData  bool
}

// Disassemble renders every word as an instruction, in address order,
// with no reachability analysis: a word the flow-aware pass would
// treat as data is rendered exactly as if it were code.
func Disassemble(words []encoding.Word) []Line {
	lines := make([]Line, len(words))
	for addr, w := range words {
		lines[addr] = Line{Address: uint16(addr), Text: renderInstruction(w, nil)}
	}
	return lines
}

// RenderListing joins lines into assembly source text, one statement
// per line, with any label rendered as a prefix on its address's line.
func RenderListing(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		if l.Label != "" {
			b.WriteString(l.Label)
			b.WriteString(": ")
		}
		b.WriteString(l.Text)
		b.WriteString("\n")
	}
	return b.String()
}
