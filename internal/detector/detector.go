// Package detector handles program file format detection.
package detector

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Format is the encoding of a program file.
type Format string

// Supported program formats.
const (
	Auto   Format = "auto"   // detect from the file content
	Hex    Format = "hex"    // text of 0xHH literals
	Binary Format = "binary" // raw program bytes
)

func (f Format) String() string {
	return string(f)
}

// hexTextChars contains all characters that can appear in a hex literal program.
const hexTextChars = "0123456789abcdefABCDEFxX[];, \r\n\t"

var hexTextTable = func() [256]bool {
	var table [256]bool
	for i := range len(hexTextChars) {
		table[hexTextChars[i]] = true
	}
	return table
}()

// ParseFormat returns the format for a format name, an empty name selects auto detection.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "":
		return Auto, nil
	case Auto, Hex, Binary:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported program format '%s', valid options: %s, %s, %s", name, Auto, Hex, Binary)
	}
}

// Detector handles program format detection.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the format of the program data. An explicitly requested
// format is returned unchanged, otherwise the format is detected from the content.
func (d *Detector) Detect(requested Format, name string, data []byte) Format {
	if requested != Auto && requested != "" {
		return requested
	}

	format := Binary
	if IsHexText(data) {
		format = Hex
	}
	d.logger.Debug("Auto-detected program format",
		log.Stringer("format", format),
		log.String("file", name))
	return format
}

// IsHexText returns whether the data only contains characters that can be
// part of a hex literal program. Empty data is not considered text.
func IsHexText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, b := range data {
		if !hexTextTable[b] {
			return false
		}
	}
	return true
}
