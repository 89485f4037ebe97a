package cache

import (
	"github.com/rob-blackbourn/jetblack-caching/store"
)

// Options amends the behavior of New. New fields may be added to this
// struct over time without breaking callers, as long as they construct it
// with field names rather than positionally.
type Options[K comparable, V any] struct {
	// BlockSize is the allocator's growth granularity. Zero selects
	// store.DefaultBlockSize.
	BlockSize uint64

	// LocalCapacity is the maximum number of entries LocalCache (tier L)
	// holds. Zero means every key lives in the persistent tier.
	LocalCapacity int

	// Medium is the backing medium for the persistent tier's Heap. If nil,
	// New creates an owned in-memory store.MemMedium; the heap is never
	// backed by a file unless the caller supplies one (e.g. via
	// store.NewFileMedium) here.
	Medium store.Medium

	// Serialize/Deserialize are required: the codec plugged into the
	// SerializingCache. They need not be infallible, but a value written
	// with Serialize must always come back unchanged through Deserialize.
	Serialize   func(V) ([]byte, error)
	Deserialize func([]byte) (V, error)
}

// New builds a complete CachingDictionary[K, V] from opts: a Heap over
// opts.Medium (or a fresh MemMedium), a SerializingCache over that heap
// using opts.Serialize/Deserialize, a PersistentDictionary over that
// cache, and a LocalCache of opts.LocalCapacity in front of it.
func New[K comparable, V any](opts Options[K, V]) *CachingDictionary[K, V] {
	var heap *store.Heap
	if opts.Medium == nil {
		heap = store.NewMemHeap(opts.BlockSize)
	} else {
		heap = store.NewHeap(store.NewHeapManager(opts.BlockSize), opts.Medium)
	}

	sc := NewSerializingCache[V](heap, opts.Serialize, opts.Deserialize)
	pd := NewPersistentDictionary[K, V](sc)
	lc := NewLocalCache[K, V](opts.LocalCapacity)
	return NewCachingDictionary[K, V](lc, pd)
}
