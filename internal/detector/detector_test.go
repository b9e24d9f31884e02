package detector

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		requested  Format
		data       []byte
		wantFormat Format
	}{
		{
			name:       "explicit binary format",
			requested:  Binary,
			data:       []byte("0x12 0x34"),
			wantFormat: Binary,
		},
		{
			name:       "explicit hex format",
			requested:  Hex,
			data:       []byte{0x12, 0x34},
			wantFormat: Hex,
		},
		{
			name:       "detect hex text",
			requested:  Auto,
			data:       []byte("[0x12, 0x34;\r\n\t0XAB]"),
			wantFormat: Hex,
		},
		{
			name:       "detect binary",
			requested:  Auto,
			data:       []byte{0x00, 0xE0, 0x12, 0x00},
			wantFormat: Binary,
		},
		{
			name:       "text with other characters is binary",
			requested:  Auto,
			data:       []byte("0x12 // comment"),
			wantFormat: Binary,
		},
		{
			name:       "empty data is binary",
			requested:  "",
			data:       nil,
			wantFormat: Binary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.requested, "test.ch8", tt.data)
			assert.Equal(t, tt.wantFormat, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"empty", "", Auto, false},
		{"auto", "auto", Auto, false},
		{"hex upper case", "HEX", Hex, false},
		{"binary", "binary", Binary, false},
		{"unsupported", "ihex", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unsupported program format")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
