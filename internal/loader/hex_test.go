package loader

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{"single literal", "0x00", []byte{0x00}},
		{"space separated", "0xC3 0x2A", []byte{0xC3, 0x2A}},
		{"upper case prefix and digits", "0XD3,0xff", []byte{0xD3, 0xFF}},
		{"array notation", "[0x12, 0x34];\r\n", []byte{0x12, 0x34}},
		{"leading separators", "\n\t [0x77]", []byte{0x77}},
		{"empty input", "", []byte{}},
		{"separators only", "[ ]\n", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex([]byte(tt.input))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHexErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
		msg    string
	}{
		{"missing prefix", "12", 1, 1, "expected hex literal"},
		{"single digit", "0x1 0x23", 1, 4, "invalid hex digit ' '"},
		{"truncated", "0x1", 1, 4, "unexpected end of input"},
		{"three digits", "0x123", 1, 5, "expected separator"},
		{"invalid digit on second line", "0x12,\n  0xG1", 2, 5, "invalid hex digit 'G'"},
		{"bare prefix", "0x12 0", 1, 6, "expected hex literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHex([]byte(tt.input))
			assert.ErrorContains(t, err, tt.msg)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.line, parseErr.Line)
			assert.Equal(t, tt.column, parseErr.Column)
		})
	}
}
