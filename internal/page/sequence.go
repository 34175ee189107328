package page

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by sequence operations for an invalid index.
var ErrIndexOutOfRange = errors.New("index out of range")

// Move returns a new sequence with the element at from moved to position to.
// The element is removed first and then inserted, so to indexes the shortened
// sequence, matching a drag from one slot onto another.
func Move(seq []ImageRef, from, to int) ([]ImageRef, error) {
	if from < 0 || from >= len(seq) {
		return nil, fmt.Errorf("%w: from %d (len %d)", ErrIndexOutOfRange, from, len(seq))
	}
	if to < 0 || to >= len(seq) {
		return nil, fmt.Errorf("%w: to %d (len %d)", ErrIndexOutOfRange, to, len(seq))
	}

	out := make([]ImageRef, 0, len(seq))
	out = append(out, seq[:from]...)
	out = append(out, seq[from+1:]...)

	moved := seq[from]
	out = append(out, "")
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out, nil
}

// Remove returns a new sequence without the element at i.
func Remove(seq []ImageRef, i int) ([]ImageRef, error) {
	if i < 0 || i >= len(seq) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(seq))
	}
	out := make([]ImageRef, 0, len(seq)-1)
	out = append(out, seq[:i]...)
	return append(out, seq[i+1:]...), nil
}
