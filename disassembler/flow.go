package disassembler

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/asmod-lang/asmodeus-sub000/encoding"
)

// analyzeFlow walks reachable addresses from entry with a worklist.
// SOB/SOM/SOZ always have a statically known target: the argument
// field taken verbatim (L <- AD & 0x07FF), regardless of the
// addressing-mode tag bits, matching the machine's own jumpTarget.
// JMP (SOB) enqueues its target only. The conditional jumps (SOM, SOZ)
// enqueue their fall-through plus their target. HALT (STP) and IRET
// (PWR) are terminal. An opcode this module doesn't recognise is
// terminal and its address is left out of the reachable set, so the
// rendering pass treats it as data.
func analyzeFlow(words []encoding.Word, entry uint16) map[uint16]bool {
	reachable := make(map[uint16]bool)
	queue := []uint16{entry}

	for len(queue) > 0 {
		addr := queue[0]
		queue = queue[1:]

		if int(addr) >= len(words) || reachable[addr] {
			continue
		}
		opcode, _, arg := encoding.Decode(words[addr])
		if mnemonicFor(opcode) == "" {
			continue
		}
		reachable[addr] = true

		switch opcode {
		case encoding.OpSOB:
			queue = append(queue, uint16(arg)&0x07FF)
		case encoding.OpSOM, encoding.OpSOZ:
			queue = append(queue, uint16(arg)&0x07FF)
			queue = append(queue, addr+1)
		case encoding.OpSTP, encoding.OpPWR:
			// terminal: no successor
		default:
			queue = append(queue, addr+1)
		}
	}
	return reachable
}

// assignLabels names every jump/branch target reached by analyzeFlow
// that lies inside words, in ascending address order, so label
// numbering is stable across runs. A target past the end of words gets
// no label and is rendered as a plain number.
func assignLabels(words []encoding.Word, reachable map[uint16]bool) map[uint16]string {
	targets := make(map[uint16]bool)
	for addr := range reachable {
		opcode, _, arg := encoding.Decode(words[addr])
		switch opcode {
		case encoding.OpSOB, encoding.OpSOM, encoding.OpSOZ:
			if target := uint16(arg) & 0x07FF; int(target) < len(words) {
				targets[target] = true
			}
		}
	}

	sorted := make([]uint16, 0, len(targets))
	for addr := range targets {
		sorted = append(sorted, addr)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	labels := make(map[uint16]string, len(sorted))
	for i, addr := range sorted {
		labels[addr] = fmt.Sprintf("L%d", i)
	}
	return labels
}

// DisassembleFlow renders words starting from a reachability analysis
// seeded at entry: reachable addresses are rendered as instructions
// (with jump targets resolved to synthesized labels), and everything
// else is rendered as an RST data word, preserving a round trip back
// through the assembler.
func DisassembleFlow(words []encoding.Word, entry uint16) []Line {
	reachable := analyzeFlow(words, entry)
	labels := assignLabels(words, reachable)

	resolve := func(address uint16) (string, bool) {
		label, ok := labels[address]
		return label, ok
	}

	lines := make([]Line, len(words))
	for addr, w := range words {
		a := uint16(addr)
		if reachable[a] {
			lines[addr] = Line{Address: a, Label: labels[a], Text: renderInstruction(w, resolve)}
		} else {
			lines[addr] = Line{Address: a, Label: labels[a], Text: "RST " + strconv.Itoa(int(w)), IsData: true}
		}
	}
	return lines
}
