package cache

import "github.com/rob-blackbourn/jetblack-caching/store"

// SerializingCache is the layer between typed values and the raw byte
// Heap: CRUD by encoding/decoding to/from byte slices and delegating
// storage to a *store.Heap. The heap only ever sees []byte payloads; this
// type is what lets callers deal in a typed T instead, via the
// Serialize/Deserialize pair.
type SerializingCache[T any] struct {
	heap        *store.Heap
	serialize   func(T) ([]byte, error)
	deserialize func([]byte) (T, error)
}

// NewSerializingCache returns a cache storing values of type T in heap
// using the given codec. It takes ownership of heap: Dispose propagates to
// it.
func NewSerializingCache[T any](heap *store.Heap, serialize func(T) ([]byte, error), deserialize func([]byte) (T, error)) *SerializingCache[T] {
	return &SerializingCache[T]{heap: heap, serialize: serialize, deserialize: deserialize}
}

// Create serializes value, allocates a block of the right size, writes the
// bytes, and returns the handle.
func (c *SerializingCache[T]) Create(value T) (store.Handle, error) {
	b, err := c.serialize(value)
	if err != nil {
		return 0, err
	}

	h, err := c.heap.Allocate(uint64(len(b)))
	if err != nil {
		return 0, err
	}

	if err := c.heap.Write(h, b); err != nil {
		return 0, err
	}

	return h, nil
}

// Read reads the raw bytes behind handle and deserializes them.
func (c *SerializingCache[T]) Read(handle store.Handle) (T, error) {
	var zero T
	b, err := c.heap.Read(handle)
	if err != nil {
		return zero, err
	}
	return c.deserialize(b)
}

// Update serializes value; if the new length equals the currently
// allocated block's length, it is written in place and handle is
// unchanged. Otherwise the old block is freed, a new one of the right size
// is allocated and written, and the (possibly different) handle is
// returned. Callers must treat the returned handle as authoritative — the
// original handle may no longer refer to anything.
func (c *SerializingCache[T]) Update(handle store.Handle, value T) (store.Handle, error) {
	b, err := c.serialize(value)
	if err != nil {
		return 0, err
	}

	block, err := c.heap.Manager().GetAllocatedBlock(handle)
	if err != nil {
		return 0, err
	}

	if uint64(len(b)) == block.Length {
		if err := c.heap.Write(handle, b); err != nil {
			return 0, err
		}
		return handle, nil
	}

	if err := c.heap.Free(handle); err != nil {
		return 0, err
	}

	newHandle, err := c.heap.Allocate(uint64(len(b)))
	if err != nil {
		return 0, err
	}

	if err := c.heap.Write(newHandle, b); err != nil {
		return 0, err
	}

	return newHandle, nil
}

// Delete frees handle.
func (c *SerializingCache[T]) Delete(handle store.Handle) error {
	return c.heap.Free(handle)
}

// Dispose propagates to the underlying Heap.
func (c *SerializingCache[T]) Dispose() error {
	return c.heap.Dispose()
}
