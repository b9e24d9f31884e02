package loader

import "fmt"

// ParseError describes a syntax error in a hex literal program.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d column %d: %s", e.Line, e.Column, e.Msg)
}

// ParseHex parses a program that is written as text of hex byte literals.
// Every literal is 0x or 0X followed by exactly two hex digits and literals
// are separated by any number of the characters "[],; \r\n\t".
func ParseHex(data []byte) ([]byte, error) {
	p := &hexParser{
		data:   data,
		line:   1,
		column: 1,
	}
	return p.parse()
}

type hexParser struct {
	data   []byte
	pos    int
	line   int
	column int
}

func (p *hexParser) parse() ([]byte, error) {
	program := make([]byte, 0, len(p.data)/5)

	p.skipSeparators()
	for p.pos < len(p.data) {
		value, err := p.literal()
		if err != nil {
			return nil, err
		}
		program = append(program, value)

		if p.pos < len(p.data) && !isSeparator(p.data[p.pos]) {
			return nil, p.errorf("expected separator after literal, found %q", p.data[p.pos])
		}
		p.skipSeparators()
	}
	return program, nil
}

func (p *hexParser) literal() (byte, error) {
	if p.pos+1 >= len(p.data) || p.data[p.pos] != '0' || (p.data[p.pos+1] != 'x' && p.data[p.pos+1] != 'X') {
		return 0, p.errorf("expected hex literal starting with 0x")
	}
	p.advance(2)

	var value byte
	for range 2 {
		if p.pos >= len(p.data) {
			return 0, p.errorf("unexpected end of input in hex literal")
		}
		c := p.data[p.pos]
		digit, ok := hexDigit(c)
		if !ok {
			return 0, p.errorf("invalid hex digit %q", c)
		}
		value = value<<4 | digit
		p.advance(1)
	}
	return value, nil
}

func (p *hexParser) skipSeparators() {
	for p.pos < len(p.data) && isSeparator(p.data[p.pos]) {
		p.advance(1)
	}
}

// advance moves the read position by n bytes and tracks line and column.
func (p *hexParser) advance(n int) {
	for range n {
		if p.data[p.pos] == '\n' {
			p.line++
			p.column = 1
		} else {
			p.column++
		}
		p.pos++
	}
}

func (p *hexParser) errorf(format string, args ...any) error {
	return &ParseError{
		Line:   p.line,
		Column: p.column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func isSeparator(c byte) bool {
	switch c {
	case '[', ']', ',', ';', ' ', '\r', '\n', '\t':
		return true
	}
	return false
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
