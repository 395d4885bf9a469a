// Command-free library root for the Machine W toolchain: encoding
// (instruction word layout), lexer and parser (source front end),
// assembler (three-pass translation to machine words), machine
// (fetch-decode-execute emulation), and disassembler (flow-aware
// rendering back to assembly text). See SPEC_FULL.md for the full
// design.
package asmodeus
