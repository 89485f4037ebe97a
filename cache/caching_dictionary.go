package cache

// CachingDictionary composes a LocalCache (tier L, bounded, hot) and a
// PersistentDictionary (tier P, unbounded, cold) into a single dictionary
// facade: it promotes a key into L on a hit against P, and demotes
// whichever key L's LRU eviction displaces back into P. keys(L) and
// keys(P) are always disjoint. This is the module's one exported facade
// over the whole cache/allocator stack; callers never address L or P
// directly.
type CachingDictionary[K comparable, V any] struct {
	local      *LocalCache[K, V]
	persistent *PersistentDictionary[K, V]
	disposed   bool
}

// NewCachingDictionary composes local and persistent into a facade that
// owns both: Dispose propagates to persistent (which in turn owns the
// SerializingCache and its Heap).
func NewCachingDictionary[K comparable, V any](local *LocalCache[K, V], persistent *PersistentDictionary[K, V]) *CachingDictionary[K, V] {
	return &CachingDictionary[K, V]{local: local, persistent: persistent}
}

// Add inserts a new key. It is an error (ErrDuplicateKey) if k is already
// present in either tier. The new entry lands in L; if that evicts an
// existing local key, the evicted key is demoted into P. With a
// zero-capacity L the new entry itself is the one demoted, straight into P.
func (d *CachingDictionary[K, V]) Add(k K, v V) error {
	if d.local.Contains(k) || d.persistent.Contains(k) {
		return &ErrDuplicateKey[K]{Key: k}
	}

	evictedKey, evictedValue, evicted := d.local.AddOrOverwrite(k, v)
	if evicted {
		if err := d.persistent.Add(evictedKey, evictedValue); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes k from whichever tier holds it, reporting whether it was
// present.
func (d *CachingDictionary[K, V]) Remove(k K) (bool, error) {
	if d.local.Remove(k) {
		return true, nil
	}
	return d.persistent.Remove(k)
}

// TryGet returns the value for k. A hit in L returns directly (and
// promotes k within L). A hit in P triggers make-local: k is deleted from
// P and added into L via AddOrOverwrite; any key L's eviction displaces is
// demoted into P. A miss in both tiers reports ok == false.
func (d *CachingDictionary[K, V]) TryGet(k K) (V, bool, error) {
	if v, ok := d.local.TryGet(k); ok {
		return v, true, nil
	}

	v, ok, err := d.persistent.TryGet(k)
	if err != nil {
		return v, false, err
	}
	if !ok {
		var zero V
		return zero, false, nil
	}

	if err := d.makeLocal(k, v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

// Get is TryGet with a KeyNotFound error in place of ok == false.
func (d *CachingDictionary[K, V]) Get(k K) (V, error) {
	v, ok, err := d.TryGet(k)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, &ErrKeyNotFound[K]{Key: k}
	}
	return v, nil
}

// makeLocal deletes k from P and installs it in L, demoting whatever L's
// eviction displaces back into P. The sum of the two tiers' sizes is
// unchanged by this operation: one key moves from P to L, and at most one
// other key moves from L to P.
func (d *CachingDictionary[K, V]) makeLocal(k K, v V) error {
	if _, err := d.persistent.Remove(k); err != nil {
		return err
	}

	evictedKey, evictedValue, evicted := d.local.AddOrOverwrite(k, v)
	if evicted {
		if err := d.persistent.Add(evictedKey, evictedValue); err != nil {
			return err
		}
	}
	return nil
}

// Set inserts or overwrites the value for k: in place if k is already
// local, via make-local-then-write if k is only in P, or via Add if k is
// in neither tier.
func (d *CachingDictionary[K, V]) Set(k K, v V) error {
	if d.local.Contains(k) {
		return d.local.Set(k, v)
	}

	if !d.persistent.Contains(k) {
		return d.Add(k, v)
	}

	return d.makeLocal(k, v)
}

// Contains reports whether k is present in either tier.
func (d *CachingDictionary[K, V]) Contains(k K) bool {
	return d.local.Contains(k) || d.persistent.Contains(k)
}

// Count returns |L| + |P|.
func (d *CachingDictionary[K, V]) Count() int {
	return d.local.Count() + d.persistent.Count()
}

// Iterate returns a snapshot of every (key, value) pair, L's entries
// followed by P's. Promotion is not performed.
func (d *CachingDictionary[K, V]) Iterate() ([]Entry[K, V], error) {
	out := d.local.Entries()
	pEntries, err := d.persistent.Iterate()
	if err != nil {
		return nil, err
	}
	return append(out, pEntries...), nil
}

// Clear empties both tiers.
func (d *CachingDictionary[K, V]) Clear() error {
	d.local.Clear()
	return d.persistent.Clear()
}

// Dispose propagates to P, which propagates to its SerializingCache and
// that cache's Heap. Dispose is idempotent: calling it again after the
// underlying store.Heap has already released its medium is a no-op rather
// than an error.
func (d *CachingDictionary[K, V]) Dispose() error {
	if d.disposed {
		return nil
	}
	d.disposed = true
	return d.persistent.Dispose()
}
