package chip8

import "testing"

const (
	testWidth  = 64
	testHeight = 32
)

type mockScreen struct {
	pixels [testHeight][testWidth]byte
	clears int
}

func (s *mockScreen) Clear() {
	s.clears++
	s.pixels = [testHeight][testWidth]byte{}
}

func (s *mockScreen) Draw(x, y int, rows []byte) bool {
	collision := false
	for r, row := range rows {
		for bit := range 8 {
			if row&(0x80>>bit) == 0 {
				continue
			}
			px := &s.pixels[(y+r)%testHeight][(x+bit)%testWidth]
			if *px == 1 {
				collision = true
			}
			*px ^= 1
		}
	}
	return collision
}

type mockKeys struct {
	down [KeyCount]bool
}

func (k *mockKeys) IsDown(key byte) bool {
	return k.down[key&0xF]
}

func (k *mockKeys) Snapshot() [KeyCount]bool {
	return k.down
}

func newTestMachine(t *testing.T, cfg Config, program ...uint16) (*Machine, *mockScreen, *mockKeys) {
	t.Helper()

	if cfg.MemorySize == 0 {
		cfg = DefaultConfig()
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	screen := &mockScreen{}
	keys := &mockKeys{}
	m, err := New(cfg, screen, keys)
	if err != nil {
		t.Fatalf("creating machine: %v", err)
	}

	data := make([]byte, 0, 2*len(program))
	for _, word := range program {
		data = append(data, byte(word>>8), byte(word))
	}
	if err := m.LoadProgram(data, ProgramStart); err != nil {
		t.Fatalf("loading program: %v", err)
	}
	return m, screen, keys
}
