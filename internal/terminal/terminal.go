// Package terminal displays the framebuffer in a text terminal and maps
// keyboard input to the hexadecimal keypad.
package terminal

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

// Rows is the number of terminal rows used for the framebuffer, every
// terminal cell shows two vertically stacked pixels.
const Rows = display.Height / 2

const statusLine = "1234 QWER ASDF ZXCV keypad, ESC quit"

// Terminals only report key presses, a key is released when it was
// not repeated for the hold duration.
var keyMap = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Config contains the terminal host configuration.
type Config struct {
	KeyHold         time.Duration // time a key stays down after its last press event
	RefreshInterval time.Duration // interval of screen refreshes
}

// DefaultConfig returns the default terminal host configuration.
func DefaultConfig() Config {
	return Config{
		KeyHold:         150 * time.Millisecond,
		RefreshInterval: time.Second / 60,
	}
}

// Host renders the framebuffer to a terminal screen and feeds key
// presses into the keypad.
type Host struct {
	logger *log.Logger
	screen tcell.Screen
	fb     *display.Framebuffer
	keys   *keypad.Keypad
	cfg    Config

	pressed [keypad.KeyCount]time.Time
	version uint64
	drawn   bool
}

// NewScreen returns an initialized screen of the current terminal.
// The caller has to call Fini on it to restore the terminal.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal screen: %w", err)
	}
	return screen, nil
}

// New returns a host for the given initialized screen.
func New(logger *log.Logger, screen tcell.Screen, fb *display.Framebuffer, keys *keypad.Keypad, cfg Config) *Host {
	return &Host{
		logger: logger,
		screen: screen,
		fb:     fb,
		keys:   keys,
		cfg:    cfg,
	}
}

// Run processes terminal events and refreshes the screen until the user
// quits, which returns nil, or the context is cancelled.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go h.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(h.cfg.RefreshInterval)
	defer ticker.Stop()

	h.screen.Clear()
	h.render()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if h.handleEvent(ev, time.Now()) {
				h.logger.Debug("Quit requested")
				return nil
			}

		case now := <-ticker.C:
			h.releaseKeys(now)
			h.render()
		}
	}
}

// handleEvent processes a terminal event and returns whether the user
// requested to quit.
func (h *Host) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			key, ok := keyMap[unicode.ToLower(ev.Rune())]
			if !ok {
				return false
			}
			h.keys.Press(key)
			h.pressed[key] = now
		}

	case *tcell.EventResize:
		h.screen.Sync()
		h.drawn = false
	}
	return false
}

// releaseKeys releases all keys that were not pressed again within the hold duration.
func (h *Host) releaseKeys(now time.Time) {
	for key, pressed := range h.pressed {
		if pressed.IsZero() || now.Sub(pressed) < h.cfg.KeyHold {
			continue
		}
		h.keys.Release(byte(key))
		h.pressed[key] = time.Time{}
	}
}

// render draws the framebuffer if it changed since the last call.
func (h *Host) render() {
	pixels, version := h.fb.Snapshot()
	if h.drawn && version == h.version {
		return
	}
	h.version = version
	h.drawn = true

	style := tcell.StyleDefault
	for row := range Rows {
		for x := range display.Width {
			top := pixels[2*row][x] != 0
			bottom := pixels[2*row+1][x] != 0
			h.screen.SetContent(x, row, cellRune(top, bottom), nil, style)
		}
	}

	status := style.Reverse(true)
	for i, r := range statusLine {
		h.screen.SetContent(i, Rows, r, nil, status)
	}
	h.screen.Show()
}

func cellRune(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
