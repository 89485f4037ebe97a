package cache

import "sync"

// Synchronized wraps a CachingDictionary with a single mutex serializing
// every public operation: one coarse lock held for the duration of each
// method rather than finer-grained per-tier locking, since L and P are
// never meant to be observed or mutated independently of each other.
// Iterate's lock is released before the caller ever touches the returned
// snapshot, so callers must not assume the dictionary stays frozen while
// they look at it.
type Synchronized[K comparable, V any] struct {
	mu   sync.Mutex
	dict *CachingDictionary[K, V]
}

// NewSynchronized wraps dict.
func NewSynchronized[K comparable, V any](dict *CachingDictionary[K, V]) *Synchronized[K, V] {
	return &Synchronized[K, V]{dict: dict}
}

func (s *Synchronized[K, V]) Add(k K, v V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Add(k, v)
}

func (s *Synchronized[K, V]) Remove(k K) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Remove(k)
}

func (s *Synchronized[K, V]) TryGet(k K) (V, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.TryGet(k)
}

func (s *Synchronized[K, V]) Get(k K) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Get(k)
}

func (s *Synchronized[K, V]) Set(k K, v V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Set(k, v)
}

func (s *Synchronized[K, V]) Contains(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Contains(k)
}

func (s *Synchronized[K, V]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Count()
}

func (s *Synchronized[K, V]) Iterate() ([]Entry[K, V], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Iterate()
}

func (s *Synchronized[K, V]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Clear()
}

func (s *Synchronized[K, V]) Dispose() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Dispose()
}
