package display

import (
	"strings"
	"sync"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDraw(t *testing.T) {
	tests := []struct {
		name      string
		x, y      int
		rows      []byte
		set       [][2]int
		collision bool
	}{
		{"single pixel", 0, 0, []byte{0x80}, [][2]int{{0, 0}}, false},
		{"row", 8, 4, []byte{0xC3}, [][2]int{{8, 4}, {9, 4}, {14, 4}, {15, 4}}, false},
		{"horizontal wrap", 62, 0, []byte{0xE0}, [][2]int{{62, 0}, {63, 0}, {0, 0}}, false},
		{"vertical wrap", 0, 31, []byte{0x80, 0x80}, [][2]int{{0, 31}, {0, 0}}, false},
		{"coordinates beyond screen", 64 + 3, 32 + 2, []byte{0x80}, [][2]int{{3, 2}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := New()
			collision := fb.Draw(tt.x, tt.y, tt.rows)
			assert.Equal(t, tt.collision, collision)

			pixels, _ := fb.Snapshot()
			count := 0
			for y := range pixels {
				for x := range pixels[y] {
					count += int(pixels[y][x])
				}
			}
			assert.Equal(t, len(tt.set), count)
			for _, p := range tt.set {
				assert.True(t, fb.Pixel(p[0], p[1]))
			}
		})
	}
}

func TestDrawCollision(t *testing.T) {
	fb := New()

	assert.False(t, fb.Draw(10, 10, []byte{0x80}))
	assert.True(t, fb.Pixel(10, 10))

	assert.True(t, fb.Draw(10, 10, []byte{0x80}))
	assert.False(t, fb.Pixel(10, 10))

	// drawing next to a set pixel is not a collision
	fb.Draw(10, 10, []byte{0x80})
	assert.False(t, fb.Draw(11, 10, []byte{0x80}))
}

func TestClear(t *testing.T) {
	fb := New()
	fb.Draw(0, 0, []byte{0xFF, 0xFF})
	_, version := fb.Snapshot()

	fb.Clear()
	pixels, cleared := fb.Snapshot()
	assert.Equal(t, Pixels{}, pixels)
	assert.True(t, cleared > version)

	fb.Clear()
	pixels, _ = fb.Snapshot()
	assert.Equal(t, Pixels{}, pixels)
}

func TestString(t *testing.T) {
	fb := New()
	fb.Draw(0, 0, []byte{0xA0})

	lines := strings.Split(strings.TrimSuffix(fb.String(), "\n"), "\n")
	assert.Len(t, lines, Height)
	assert.Equal(t, "#.#"+strings.Repeat(".", Width-3), lines[0])
	assert.Equal(t, strings.Repeat(".", Width), lines[1])
}

func TestConcurrentAccess(t *testing.T) {
	fb := New()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			fb.Draw(i, i, []byte{0xFF})
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			_, _ = fb.Snapshot()
		}
	}()
	wg.Wait()
}
