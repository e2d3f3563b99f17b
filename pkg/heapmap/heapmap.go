// Package heapmap provides a min-heap whose elements are addressable by a
// unique 2D grid coordinate.
//
// The heap keeps a coordinate -> array index table in sync with every swap,
// so an element can be looked up and mutated in place without a linear scan.
package heapmap

import (
	"container/heap"
	"errors"
)

var (
	// ErrEmpty is returned by Pop when the heap holds no elements.
	ErrEmpty = errors.New("heapmap: length is zero")
	// ErrLookupMiss is returned when no element is stored under a coordinate.
	ErrLookupMiss = errors.New("heapmap: lookup returned none")
)

// Heapable is implemented by elements identified by a grid coordinate.
type Heapable interface {
	X() uint32
	Y() uint32
}

// Key is the lookup key of an element.
type Key struct {
	X, Y uint32
}

// KeyOf returns the lookup key of v.
func KeyOf(v Heapable) Key {
	return Key{X: v.X(), Y: v.Y()}
}

// entries implements heap.Interface and maintains the lookup table on
// every structural change.
type entries[T Heapable] struct {
	data   []T
	lookup map[Key]int
	less   func(a, b T) bool
}

func (e *entries[T]) Len() int           { return len(e.data) }
func (e *entries[T]) Less(i, j int) bool { return e.less(e.data[i], e.data[j]) }

func (e *entries[T]) Swap(i, j int) {
	e.data[i], e.data[j] = e.data[j], e.data[i]
	e.lookup[KeyOf(e.data[i])] = i
	e.lookup[KeyOf(e.data[j])] = j
}

func (e *entries[T]) Push(x any) {
	v := x.(T)
	e.lookup[KeyOf(v)] = len(e.data)
	e.data = append(e.data, v)
}

func (e *entries[T]) Pop() any {
	n := len(e.data)
	v := e.data[n-1]
	var zero T
	e.data[n-1] = zero
	e.data = e.data[:n-1]
	delete(e.lookup, KeyOf(v))
	return v
}

// MinHeapMap is a min-heap ordered by a caller supplied less function with
// O(1) lookup by coordinate.
type MinHeapMap[T Heapable] struct {
	e *entries[T]
}

// New creates an empty heap ordered by less.
func New[T Heapable](less func(a, b T) bool) *MinHeapMap[T] {
	return &MinHeapMap[T]{
		e: &entries[T]{
			lookup: make(map[Key]int),
			less:   less,
		},
	}
}

// FromSlice creates a heap holding all values.
func FromSlice[T Heapable](values []T, less func(a, b T) bool) *MinHeapMap[T] {
	h := New(less)
	for _, v := range values {
		h.Insert(v)
	}
	return h
}

// Len returns the number of elements in the heap.
func (h *MinHeapMap[T]) Len() int {
	return h.e.Len()
}

// Insert adds value to the heap. If an element with the same coordinate is
// already present it is replaced.
func (h *MinHeapMap[T]) Insert(value T) {
	if idx, ok := h.e.lookup[KeyOf(value)]; ok {
		h.e.data[idx] = value
		heap.Fix(h.e, idx)
		return
	}
	heap.Push(h.e, value)
}

// Pop removes and returns the minimum element.
func (h *MinHeapMap[T]) Pop() (T, error) {
	if h.e.Len() == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return heap.Pop(h.e).(T), nil
}

// Peek returns the minimum element without removing it.
func (h *MinHeapMap[T]) Peek() (T, bool) {
	if h.e.Len() == 0 {
		var zero T
		return zero, false
	}
	return h.e.data[0], true
}

// Lookup returns the element stored under (x, y).
func (h *MinHeapMap[T]) Lookup(x, y uint32) (T, bool) {
	idx, ok := h.e.lookup[Key{X: x, Y: y}]
	if !ok {
		var zero T
		return zero, false
	}
	return h.e.data[idx], true
}

// LookupAndMutate applies f to the element stored under (x, y) and restores
// the heap ordering afterwards. f must not change the element's coordinate.
func (h *MinHeapMap[T]) LookupAndMutate(x, y uint32, f func(*T)) error {
	idx, ok := h.e.lookup[Key{X: x, Y: y}]
	if !ok {
		return ErrLookupMiss
	}
	f(&h.e.data[idx])
	heap.Fix(h.e, idx)
	return nil
}
