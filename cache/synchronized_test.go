package cache

import (
	"sync"
	"testing"

	"github.com/rob-blackbourn/jetblack-caching/store"
)

func TestSynchronizedConcurrentAddGet(t *testing.T) {
	ser, deser := stringCodec()
	d := New[int, string](Options[int, string]{
		BlockSize:     8,
		LocalCapacity: 4,
		Medium:        store.NewMemMedium(),
		Serialize:     ser,
		Deserialize:   deser,
	})
	s := NewSynchronized[int, string](d)
	defer s.Dispose()

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if err := s.Add(i, "v"); err != nil {
				t.Errorf("Add(%d): %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if s.Count() != n {
		t.Fatalf("Count() = %d, want %d", s.Count(), n)
	}

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if _, err := s.Get(i); err != nil {
				t.Errorf("Get(%d): %v", i, err)
			}
		}(i)
	}
	wg.Wait()
}

func TestSynchronizedRemoveAndClear(t *testing.T) {
	ser, deser := stringCodec()
	d := New[string, string](Options[string, string]{
		LocalCapacity: 2,
		Medium:        store.NewMemMedium(),
		Serialize:     ser,
		Deserialize:   deser,
	})
	s := NewSynchronized[string, string](d)
	defer s.Dispose()

	if err := s.Add("a", "1"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	removed, err := s.Remove("a")
	if err != nil || !removed {
		t.Fatalf("Remove = (%v, %v), want (true, nil)", removed, err)
	}

	if err := s.Add("b", "2"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", s.Count())
	}
}
