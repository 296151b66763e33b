// Package arena provides a grow-only chunked allocator. Every value
// allocated from one arena shares one lifetime: Reset releases the whole
// arena in a single step, so per-node bookkeeping is never needed.
package arena

const defaultChunkSize = 256

// Arena is a bump allocator over chunks of T. The zero value is ready to
// use. It is not safe for concurrent use; each parse owns its arenas
// exclusively.
type Arena[T any] struct {
	chunks [][]T
	used   int // slots used in the last chunk
	total  int
}

// Alloc returns a pointer to the next zeroed slot.
func (a *Arena[T]) Alloc() *T {
	if len(a.chunks) == 0 || a.used == len(a.chunks[len(a.chunks)-1]) {
		a.chunks = append(a.chunks, make([]T, defaultChunkSize))
		a.used = 0
	}
	chunk := a.chunks[len(a.chunks)-1]
	ptr := &chunk[a.used]
	a.used++
	a.total++
	return ptr
}

// New allocates a slot and copies v into it.
func (a *Arena[T]) New(v T) *T {
	ptr := a.Alloc()
	*ptr = v
	return ptr
}

// Len returns the number of live allocations.
func (a *Arena[T]) Len() int { return a.total }

// Reset drops every chunk at once. Pointers handed out before the reset
// must no longer be used.
func (a *Arena[T]) Reset() {
	a.chunks = nil
	a.used = 0
	a.total = 0
}
