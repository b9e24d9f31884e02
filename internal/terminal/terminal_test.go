package terminal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestHost(t *testing.T) (*Host, tcell.SimulationScreen, *display.Framebuffer, *keypad.Keypad) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	assert.NoError(t, screen.Init())
	screen.SetSize(display.Width, Rows+1)
	t.Cleanup(screen.Fini)

	fb := display.New()
	keys := keypad.New()
	host := New(log.NewTestLogger(t), screen, fb, keys, DefaultConfig())
	return host, screen, fb, keys
}

func cellAt(t *testing.T, screen tcell.SimulationScreen, x, y int) rune {
	t.Helper()
	cells, width, _ := screen.GetContents()
	cell := cells[y*width+x]
	assert.True(t, len(cell.Runes) > 0)
	return cell.Runes[0]
}

func TestRender(t *testing.T) {
	host, screen, fb, _ := newTestHost(t)

	fb.Draw(0, 0, []byte{0x80})
	fb.Draw(1, 1, []byte{0x80})
	fb.Draw(2, 0, []byte{0x80, 0x80})
	fb.Draw(0, display.Height-1, []byte{0x80})
	host.render()

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"top pixel", 0, 0, '▀'},
		{"bottom pixel", 1, 0, '▄'},
		{"both pixels", 2, 0, '█'},
		{"no pixel", 3, 0, ' '},
		{"last row", 0, Rows - 1, '▄'},
		{"status line", 0, Rows, '1'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellAt(t, screen, tt.x, tt.y))
		})
	}
}

func TestRenderOnlyOnChange(t *testing.T) {
	host, screen, fb, _ := newTestHost(t)
	host.render()
	_, version := fb.Snapshot()
	assert.Equal(t, version, host.version)

	// content that was not written by the host stays until the framebuffer changes
	screen.SetContent(5, 5, 'X', nil, tcell.StyleDefault)
	screen.Show()
	host.render()
	assert.Equal(t, 'X', cellAt(t, screen, 5, 5))

	fb.Clear()
	host.render()
	assert.Equal(t, ' ', cellAt(t, screen, 5, 5))
}

func TestHandleKeyEvents(t *testing.T) {
	host, _, _, keys := newTestHost(t)
	now := time.Now()

	quit := host.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), now)
	assert.False(t, quit)
	assert.True(t, keys.IsDown(0x5))

	quit = host.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'V', tcell.ModShift), now)
	assert.False(t, quit)
	assert.True(t, keys.IsDown(0xF))

	quit = host.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), now)
	assert.False(t, quit)

	host.releaseKeys(now.Add(host.cfg.KeyHold / 2))
	assert.True(t, keys.IsDown(0x5))

	host.releaseKeys(now.Add(host.cfg.KeyHold))
	assert.False(t, keys.IsDown(0x5))
	assert.False(t, keys.IsDown(0xF))
}

func TestHandleQuitEvents(t *testing.T) {
	host, _, _, _ := newTestHost(t)

	tests := []struct {
		name string
		key  tcell.Key
	}{
		{"escape", tcell.KeyEscape},
		{"ctrl-c", tcell.KeyCtrlC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quit := host.handleEvent(tcell.NewEventKey(tt.key, 0, tcell.ModNone), time.Now())
			assert.True(t, quit)
		})
	}
}

func TestHandleResize(t *testing.T) {
	host, _, _, _ := newTestHost(t)
	host.render()
	assert.True(t, host.drawn)

	quit := host.handleEvent(tcell.NewEventResize(80, 25), time.Now())
	assert.False(t, quit)
	assert.False(t, host.drawn)
}

func TestRunQuit(t *testing.T) {
	host, screen, _, _ := newTestHost(t)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, host.Run(ctx))
}

func TestRunCancel(t *testing.T) {
	host, _, _, _ := newTestHost(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := host.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
