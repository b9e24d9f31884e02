// Package programs contains example programs that are bundled with the interpreter.
// The programs are stored as hex literal text.
package programs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

const extension = ".hex"

//go:embed roms/*.hex
var roms embed.FS

// ErrUnknownProgram is returned for a program name that is not bundled.
var ErrUnknownProgram = errors.New("unknown example program")

// Names returns the sorted names of all bundled programs.
func Names() []string {
	entries, err := fs.ReadDir(roms, "roms")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), extension))
	}
	slices.Sort(names)
	return names
}

// Source returns the hex literal text of a bundled program.
func Source(name string) ([]byte, error) {
	data, err := roms.ReadFile(path.Join("roms", name+extension))
	if err != nil {
		return nil, fmt.Errorf("%w '%s', available: %s", ErrUnknownProgram, name, strings.Join(Names(), ", "))
	}
	return data, nil
}
