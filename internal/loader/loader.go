// Package loader handles program file loading operations.
package loader

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/retroenv/retrochip8/internal/detector"
)

// MaxFileSize is the largest program file that is read.
const MaxFileSize = 1 << 20

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// ReadFile returns the content of a program file.
func (l *Loader) ReadFile(fileName string) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "opening program file")
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "reading program file info")
	}
	if st.Size() > MaxFileSize {
		return nil, errors.Errorf("%v: file too large", fileName)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "reading program file")
	}
	return data, nil
}

// Decode converts file content of the given format to program bytes.
func (l *Loader) Decode(data []byte, format detector.Format) ([]byte, error) {
	switch format {
	case detector.Binary:
		return data, nil
	case detector.Hex:
		program, err := ParseHex(data)
		if err != nil {
			return nil, errors.Wrap(err, "parsing hex program")
		}
		return program, nil
	default:
		return nil, errors.Errorf("unsupported program format '%s'", format)
	}
}
