package jsontoken

import "github.com/lattice-substrate/json-parse/jsonvalue"

// member is one decoded object member awaiting materialization.
type member struct {
	key string
	val jsonvalue.Value
}

// bufferPool hands out reusable scratch slices to nested container
// decoders. Each open container holds one buffer; siblings reuse the
// buffers released by containers that already closed.
type bufferPool[T any] struct {
	free [][]T
}

func (bp *bufferPool[T]) get() []T {
	if n := len(bp.free); n > 0 {
		b := bp.free[n-1]
		bp.free = bp.free[:n-1]
		return b
	}
	return make([]T, 0, 8)
}

// put clears b so it holds no references into the finished tree and makes
// it available again.
func (bp *bufferPool[T]) put(b []T) {
	clear(b)
	bp.free = append(bp.free, b[:0])
}
