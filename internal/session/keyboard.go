package session

import (
	"github.com/kamstrup/intmap"
)

// Key is an abstract input action. Raw key codes are mapped to keys by the
// input source; anything unmapped never reaches the keyboard.
type Key uint8

const (
	KeyRotateCW Key = iota
	KeyRotateCCW
	KeyLeft
	KeyRight
	KeySoftDrop
	KeyHardDrop
	KeyConfirm
)

var keyNames = [...]string{"rotate_cw", "rotate_ccw", "left", "right", "soft_drop", "hard_drop", "confirm"}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// Keyboard buffers discrete key presses in arrival order and tracks which
// keys are currently held down.
type Keyboard struct {
	queue []Key
	held  *intmap.Map[Key, bool]
}

func NewKeyboard() *Keyboard {
	return &Keyboard{
		held: intmap.New[Key, bool](len(keyNames)),
	}
}

// Press records a key-down event.
func (k *Keyboard) Press(key Key) {
	k.queue = append(k.queue, key)
	k.held.Put(key, true)
}

// Release records a key-up event.
func (k *Keyboard) Release(key Key) {
	k.held.Put(key, false)
}

func (k *Keyboard) HasKeys() bool {
	return len(k.queue) > 0
}

// Next pops the oldest buffered key.
func (k *Keyboard) Next() (Key, bool) {
	if len(k.queue) == 0 {
		return 0, false
	}
	key := k.queue[0]
	k.queue = k.queue[1:]
	return key, true
}

// Held reports whether key is currently down.
func (k *Keyboard) Held(key Key) bool {
	down, _ := k.held.Get(key)
	return down
}

// Reset drops buffered presses and releases every key.
func (k *Keyboard) Reset() {
	k.queue = nil
	k.held = intmap.New[Key, bool](len(keyNames))
}
