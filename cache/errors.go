package cache

import "fmt"

// ErrDuplicateKey is returned by PersistentDictionary.Add and
// CachingDictionary.Add when the key is already present.
type ErrDuplicateKey[K any] struct {
	Key K
}

func (e *ErrDuplicateKey[K]) Error() string {
	return fmt.Sprintf("cache: duplicate key %v", e.Key)
}

// ErrKeyNotFound is returned by lookups/updates against an absent key.
type ErrKeyNotFound[K any] struct {
	Key K
}

func (e *ErrKeyNotFound[K]) Error() string {
	return fmt.Sprintf("cache: key not found: %v", e.Key)
}

// ErrEmpty is returned by CircularBuffer.Dequeue when the buffer holds no
// elements.
type ErrEmpty struct{}

func (e *ErrEmpty) Error() string { return "cache: buffer is empty" }

// ErrOutOfRange is returned by indexed CircularBuffer operations given an
// index outside [0, count) (or [0, count] for Insert).
type ErrOutOfRange struct {
	Index int
	Count int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("cache: index %d out of range for count %d", e.Index, e.Count)
}
