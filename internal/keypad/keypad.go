// Package keypad provides the key state of the hexadecimal keypad that is
// shared between the input host and the interpreter.
package keypad

import "sync"

// KeyCount is the number of keys of the keypad.
const KeyCount = 16

// State contains the down state of every key, indexed by key value.
type State [KeyCount]bool

// Keypad holds the current key state. The host replaces the whole state
// at once so that readers never observe a partially updated state.
type Keypad struct {
	mu    sync.RWMutex
	state State
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// Set replaces the key state.
func (k *Keypad) Set(state State) {
	k.mu.Lock()
	k.state = state
	k.mu.Unlock()
}

// Press marks a single key as down.
func (k *Keypad) Press(key byte) {
	k.mu.Lock()
	k.state[key%KeyCount] = true
	k.mu.Unlock()
}

// Release marks a single key as up.
func (k *Keypad) Release(key byte) {
	k.mu.Lock()
	k.state[key%KeyCount] = false
	k.mu.Unlock()
}

// IsDown returns whether the key is currently pressed.
func (k *Keypad) IsDown(key byte) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.state[key%KeyCount]
}

// Snapshot returns a copy of the current key state.
func (k *Keypad) Snapshot() [KeyCount]bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.state
}
