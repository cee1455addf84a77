package services

import (
	"reflect"
)

// DefaultMaxHistory bounds the undo stack when no limit is given.
const DefaultMaxHistory = 50

// History is a bounded past/present/future container supplying undo/redo
// for any editable state. It is framework-free and usable on its own, e.g.
// wrapping the quote editor's working value.
type History[T any] struct {
	past       []T
	present    T
	future     []T
	maxHistory int
}

// NewHistory creates a history around an initial value. A non-positive
// maxHistory falls back to DefaultMaxHistory.
func NewHistory[T any](initial T, maxHistory int) *History[T] {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &History[T]{present: initial, maxHistory: maxHistory}
}

// Present returns the current value.
func (h *History[T]) Present() T {
	return h.present
}

// Set records a new present value. Setting a value equal to the present is
// a no-op and does not touch history. Otherwise the old present is pushed
// onto the past (dropping the oldest entry past the bound) and the future
// is cleared entirely.
func (h *History[T]) Set(value T) {
	if reflect.DeepEqual(value, h.present) {
		return
	}

	h.past = append(h.past, h.present)
	if len(h.past) > h.maxHistory {
		h.past = h.past[1:]
	}
	h.present = value
	h.future = nil
}

// Update applies an updater to the present value and records the result.
func (h *History[T]) Update(updater func(T) T) {
	h.Set(updater(h.present))
}

// Undo steps back to the previous value. A no-op on an empty past.
func (h *History[T]) Undo() {
	if len(h.past) == 0 {
		return
	}
	previous := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]T{h.present}, h.future...)
	h.present = previous
}

// Redo steps forward to the next value. A no-op on an empty future.
func (h *History[T]) Redo() {
	if len(h.future) == 0 {
		return
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next
}

// Reset clears all history and sets a fresh present value.
func (h *History[T]) Reset(value T) {
	h.past = nil
	h.future = nil
	h.present = value
}

// CanUndo reports whether any past values remain.
func (h *History[T]) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether any future values remain.
func (h *History[T]) CanRedo() bool {
	return len(h.future) > 0
}

// Past returns a copy of the past stack, oldest first.
func (h *History[T]) Past() []T {
	out := make([]T, len(h.past))
	copy(out, h.past)
	return out
}

// Future returns a copy of the future stack, nearest first.
func (h *History[T]) Future() []T {
	out := make([]T, len(h.future))
	copy(out, h.future)
	return out
}
