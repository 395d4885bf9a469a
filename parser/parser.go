package parser

import (
	"strings"

	"github.com/asmod-lang/asmodeus-sub000/lexer"
)

// Parser converts a token stream into a flat Program AST with a
// single forward pass and one-token lookahead.
type Parser struct {
	tokens []lexer.Token
	pos    int
	cur    lexer.Token
	peek   lexer.Token
}

// New creates a Parser over an already-tokenised stream (the final
// token must be the Eof sentinel lexer.Tokenize produces).
func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens}
	p.advance()
	p.advance()
	return p
}

// Parse lexes and parses source text in one step.
func Parse(source string) (*Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return New(tokens).ParseProgram()
}

func (p *Parser) advance() {
	p.cur = p.peek
	if p.pos < len(p.tokens) {
		p.peek = p.tokens[p.pos]
		p.pos++
	} else {
		p.peek = lexer.Token{Type: lexer.TokenEOF}
	}
}

// noOperandMnemonics is the fixed set of opcodes (and their
// synonyms) that take no operand.
var noOperandMnemonics = map[string]bool{
	"STP": true, "DNS": true, "PZS": true, "SDP": true, "CZM": true,
	"PWR": true, "WEJSCIE": true, "WPR": true, "WYJSCIE": true, "WYJ": true,
}

// ParseProgram parses the entire token stream into a Program.
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{}
	for p.cur.Type != lexer.TokenEOF {
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		prog.Elements = append(prog.Elements, el)
	}
	return prog, nil
}

func (p *Parser) parseElement() (ProgramElement, error) {
	switch p.cur.Type {
	case lexer.TokenLabelDef:
		el := &LabelDefinition{Name: p.cur.Literal, Pos: p.cur.Pos}
		p.advance()
		return el, nil

	case lexer.TokenDirective:
		if strings.EqualFold(p.cur.Literal, "MAKRO") {
			return p.parseMacroDefinition()
		}
		return p.parseDirective(), nil

	case lexer.TokenKeyword:
		return p.parseInstruction()

	case lexer.TokenIdentifier:
		return p.parseMacroCall(), nil

	default:
		return nil, newError(p.cur.Pos, ErrorUnexpectedToken, "unexpected token "+p.cur.Type.String())
	}
}

// startsNewStatement reports whether a token kind could begin the next
// ProgramElement, i.e. argument/parameter collection must stop here.
func startsNewStatement(t lexer.Token) bool {
	switch t.Type {
	case lexer.TokenKeyword, lexer.TokenLabelDef, lexer.TokenDirective, lexer.TokenEOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseDirective() *Directive {
	d := &Directive{Name: p.cur.Literal, Pos: p.cur.Pos}
	p.advance()
	for !startsNewStatement(p.cur) {
		switch p.cur.Type {
		case lexer.TokenNumber, lexer.TokenIdentifier:
			d.Args = append(d.Args, p.cur.Literal)
			p.advance()
		default:
			p.advance() // skip intervening punctuation
		}
	}
	return d
}

func (p *Parser) parseMacroDefinition() (*MacroDefinition, error) {
	pos := p.cur.Pos
	p.advance() // consume MAKRO

	if p.cur.Type != lexer.TokenIdentifier {
		return nil, newError(p.cur.Pos, ErrorUnexpectedToken, "expected macro name after MAKRO")
	}
	name := p.cur.Literal
	p.advance()

	var params []string
	for p.cur.Type == lexer.TokenIdentifier || p.cur.Type == lexer.TokenPunctuation {
		if p.cur.Type == lexer.TokenIdentifier {
			params = append(params, p.cur.Literal)
		}
		p.advance()
	}

	var body []ProgramElement
	for {
		if p.cur.Type == lexer.TokenEOF {
			return nil, newError(pos, ErrorUnterminatedMacro, "missing KONM before end of input")
		}
		if p.cur.Type == lexer.TokenDirective && strings.EqualFold(p.cur.Literal, "KONM") {
			p.advance()
			break
		}
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		body = append(body, el)
	}

	return &MacroDefinition{Name: name, Parameters: params, Body: body, Pos: pos}, nil
}

func (p *Parser) parseInstruction() (*Instruction, error) {
	mnemonic := p.cur.Literal
	pos := p.cur.Pos
	p.advance()

	if noOperandMnemonics[mnemonic] {
		return &Instruction{Mnemonic: mnemonic, Pos: pos}, nil
	}

	if startsNewStatement(p.cur) {
		return nil, newError(pos, ErrorMissingOperand, "instruction "+mnemonic+" requires an operand")
	}

	operand, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: mnemonic, Operand: operand, Pos: pos}, nil
}

func (p *Parser) parseMacroCall() *MacroCall {
	call := &MacroCall{Name: p.cur.Literal, Pos: p.cur.Pos}
	p.advance()
	for !startsNewStatement(p.cur) {
		switch p.cur.Type {
		case lexer.TokenNumber, lexer.TokenIdentifier:
			call.Args = append(call.Args, p.cur.Literal)
			p.advance()
		default:
			p.advance()
		}
	}
	return call
}

func isRegisterLiteral(s string) bool {
	if len(s) < 2 {
		return false
	}
	if s[0] != 'R' && s[0] != 'r' {
		return false
	}
	for _, ch := range s[1:] {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

func isPunct(t lexer.Token, lit string) bool {
	return t.Type == lexer.TokenPunctuation && t.Literal == lit
}

// readAtom consumes a single Number or Identifier token used as an
// address/index/offset expression inside brackets.
func (p *Parser) readAtom() (string, error) {
	if p.cur.Type != lexer.TokenNumber && p.cur.Type != lexer.TokenIdentifier {
		return "", newError(p.cur.Pos, ErrorUnexpectedToken, "expected a number or identifier")
	}
	value := p.cur.Literal
	p.advance()
	return value, nil
}

func (p *Parser) expectPunct(lit string) error {
	if !isPunct(p.cur, lit) {
		return newError(p.cur.Pos, ErrorUnexpectedToken, "expected '"+lit+"'")
	}
	p.advance()
	return nil
}

func (p *Parser) parseOperand() (*Operand, error) {
	switch {
	case isPunct(p.cur, "#"):
		p.advance()
		value, err := p.readAtom()
		if err != nil {
			return nil, err
		}
		return &Operand{Mode: ModeImmediate, Value: value}, nil

	case isPunct(p.cur, "+"):
		p.advance()
		if p.cur.Type != lexer.TokenNumber {
			return nil, newError(p.cur.Pos, ErrorUnexpectedToken, "expected a number after '+'")
		}
		value := "+" + p.cur.Literal
		p.advance()
		return &Operand{Mode: ModeRelative, Value: value}, nil

	case p.cur.Type == lexer.TokenNumber && strings.HasPrefix(p.cur.Literal, "-"):
		value := p.cur.Literal
		p.advance()
		return &Operand{Mode: ModeRelative, Value: value}, nil

	case isPunct(p.cur, "["):
		p.advance()
		if isPunct(p.cur, "[") {
			p.advance()
			value, err := p.readAtom()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			return &Operand{Mode: ModeMultipleIndirect, Value: value}, nil
		}
		if p.cur.Type == lexer.TokenIdentifier && isRegisterLiteral(p.cur.Literal) {
			reg := p.cur.Literal
			p.advance()
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			return &Operand{Mode: ModeRegisterIndirect, Value: reg}, nil
		}
		value, err := p.readAtom()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		return &Operand{Mode: ModeIndirect, Value: value}, nil

	case p.cur.Type == lexer.TokenIdentifier && isRegisterLiteral(p.cur.Literal):
		reg := p.cur.Literal
		p.advance()
		if isPunct(p.cur, "[") {
			p.advance()
			offset, err := p.readAtom()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			return &Operand{Mode: ModeBaseRegister, Value: reg, Extra: offset}, nil
		}
		return &Operand{Mode: ModeRegister, Value: reg}, nil

	case p.cur.Type == lexer.TokenNumber || p.cur.Type == lexer.TokenIdentifier:
		value := p.cur.Literal
		p.advance()
		if isPunct(p.cur, "[") {
			p.advance()
			index, err := p.readAtom()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			return &Operand{Mode: ModeIndexed, Value: value, Extra: index}, nil
		}
		return &Operand{Mode: ModeDirect, Value: value}, nil

	default:
		return nil, newError(p.cur.Pos, ErrorUnexpectedToken, "invalid operand syntax")
	}
}
