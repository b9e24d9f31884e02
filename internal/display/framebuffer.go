// Package display provides the framebuffer that is shared between the
// interpreter and the host that renders it.
package display

import (
	"strings"
	"sync"
)

// Framebuffer dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Pixels contains one byte per pixel, each either 0 or 1.
type Pixels [Height][Width]byte

// Framebuffer is a monochrome framebuffer that supports concurrent readers
// and a single writing interpreter. Writers hold the lock only for a single
// clear or draw operation.
type Framebuffer struct {
	mu      sync.RWMutex
	pixels  Pixels
	version uint64
}

// New returns a cleared framebuffer.
func New() *Framebuffer {
	return &Framebuffer{}
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pixels = Pixels{}
	f.version++
}

// Draw XORs the 8 pixel wide sprite rows onto the framebuffer with the top
// left corner at x,y. Every pixel wraps around the framebuffer edges.
// It returns whether any set sprite pixel turned off a set framebuffer pixel.
func (f *Framebuffer) Draw(x, y int, rows []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	collision := false
	for r, row := range rows {
		py := (y + r) % Height
		for bit := range 8 {
			if row&(0x80>>bit) == 0 {
				continue
			}

			px := (x + bit) % Width
			if f.pixels[py][px] == 1 {
				collision = true
			}
			f.pixels[py][px] ^= 1
		}
	}
	f.version++
	return collision
}

// Pixel returns whether the pixel at x,y is set.
func (f *Framebuffer) Pixel(x, y int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pixels[y%Height][x%Width] == 1
}

// Snapshot returns a copy of all pixels and the version of the framebuffer
// content. The version changes with every clear or draw operation.
func (f *Framebuffer) Snapshot() (Pixels, uint64) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pixels, f.version
}

// String renders the framebuffer as text, one line per pixel row
// with '#' for set and '.' for cleared pixels.
func (f *Framebuffer) String() string {
	pixels, _ := f.Snapshot()
	return pixels.String()
}

func (p *Pixels) String() string {
	var b strings.Builder
	b.Grow(Height * (Width + 1))

	for y := range p {
		for x := range p[y] {
			if p[y][x] == 1 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
