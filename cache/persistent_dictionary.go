package cache

import "github.com/rob-blackbourn/jetblack-caching/store"

// PersistentDictionary maps external keys to handles managed by a
// SerializingCache. It is the "unbounded, cold" tier a CachingDictionary
// demotes into: a plain in-memory index over the byte-level cache, with no
// on-disk directory format of its own to maintain.
type PersistentDictionary[K comparable, V any] struct {
	cache *SerializingCache[V]
	index map[K]store.Handle
}

// NewPersistentDictionary returns an empty dictionary backed by cache. It
// takes ownership of cache: Dispose propagates to it.
func NewPersistentDictionary[K comparable, V any](cache *SerializingCache[V]) *PersistentDictionary[K, V] {
	return &PersistentDictionary[K, V]{cache: cache, index: map[K]store.Handle{}}
}

// Add inserts (k, v). ErrDuplicateKey if k is already indexed.
func (d *PersistentDictionary[K, V]) Add(k K, v V) error {
	if _, ok := d.index[k]; ok {
		return &ErrDuplicateKey[K]{Key: k}
	}

	h, err := d.cache.Create(v)
	if err != nil {
		return err
	}

	d.index[k] = h
	return nil
}

// Remove deletes k if present, reporting whether it was removed.
func (d *PersistentDictionary[K, V]) Remove(k K) (bool, error) {
	h, ok := d.index[k]
	if !ok {
		return false, nil
	}

	if err := d.cache.Delete(h); err != nil {
		return false, err
	}

	delete(d.index, k)
	return true, nil
}

// Get reads the value for k, returning ErrKeyNotFound if absent.
func (d *PersistentDictionary[K, V]) Get(k K) (V, error) {
	var zero V
	h, ok := d.index[k]
	if !ok {
		return zero, &ErrKeyNotFound[K]{Key: k}
	}
	return d.cache.Read(h)
}

// TryGet reads the value for k without an error for a miss.
func (d *PersistentDictionary[K, V]) TryGet(k K) (V, bool, error) {
	var zero V
	h, ok := d.index[k]
	if !ok {
		return zero, false, nil
	}
	v, err := d.cache.Read(h)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Set inserts or replaces the value for k, updating the cache handle if the
// value's serialized size changed.
func (d *PersistentDictionary[K, V]) Set(k K, v V) error {
	h, ok := d.index[k]
	if !ok {
		return d.Add(k, v)
	}

	newHandle, err := d.cache.Update(h, v)
	if err != nil {
		return err
	}

	d.index[k] = newHandle
	return nil
}

// Contains reports whether k is indexed.
func (d *PersistentDictionary[K, V]) Contains(k K) bool {
	_, ok := d.index[k]
	return ok
}

// Count returns the number of indexed keys.
func (d *PersistentDictionary[K, V]) Count() int { return len(d.index) }

// Entry is one (key, value) pair yielded by Iterate.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Iterate returns a snapshot of every (key, value) pair. Order is
// unspecified but stable within the returned snapshot; mutating the
// dictionary while using a previously returned snapshot is undefined.
func (d *PersistentDictionary[K, V]) Iterate() ([]Entry[K, V], error) {
	out := make([]Entry[K, V], 0, len(d.index))
	for k, h := range d.index {
		v, err := d.cache.Read(h)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out, nil
}

// Clear deletes every handle and empties the index.
func (d *PersistentDictionary[K, V]) Clear() error {
	for _, h := range d.index {
		if err := d.cache.Delete(h); err != nil {
			return err
		}
	}
	d.index = map[K]store.Handle{}
	return nil
}

// Dispose propagates to the underlying SerializingCache.
func (d *PersistentDictionary[K, V]) Dispose() error {
	return d.cache.Dispose()
}
