package cache

import (
	"sort"
	"testing"

	"github.com/rob-blackbourn/jetblack-caching/store"
)

func newTestPersistentDictionary(t *testing.T) *PersistentDictionary[string, string] {
	t.Helper()
	heap := store.NewMemHeap(8)
	ser, deser := stringCodec()
	sc := NewSerializingCache[string](heap, ser, deser)
	pd := NewPersistentDictionary[string, string](sc)
	t.Cleanup(func() { pd.Dispose() })
	return pd
}

func TestPersistentDictionaryAddGetRemove(t *testing.T) {
	pd := newTestPersistentDictionary(t)

	if err := pd.Add("k1", "v1"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := pd.Add("k1", "v2"); err == nil {
		t.Fatal("expected ErrDuplicateKey on re-Add")
	}

	v, err := pd.Get("k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "v1" {
		t.Fatalf("Get = %q, want v1", v)
	}

	removed, err := pd.Remove("k1")
	if err != nil || !removed {
		t.Fatalf("Remove = (%v, %v), want (true, nil)", removed, err)
	}
	if pd.Contains("k1") {
		t.Fatal("k1 still present after Remove")
	}
	if _, err := pd.Get("k1"); err == nil {
		t.Fatal("expected ErrKeyNotFound after Remove")
	}
}

func TestPersistentDictionarySetInsertsOrUpdates(t *testing.T) {
	pd := newTestPersistentDictionary(t)

	if err := pd.Set("k", "first"); err != nil {
		t.Fatalf("Set (insert): %v", err)
	}
	if err := pd.Set("k", "a rather longer second value"); err != nil {
		t.Fatalf("Set (update, different length): %v", err)
	}

	v, err := pd.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "a rather longer second value" {
		t.Fatalf("Get = %q, want the updated value", v)
	}
}

func TestPersistentDictionaryIterateAndClear(t *testing.T) {
	pd := newTestPersistentDictionary(t)

	pd.Add("a", "1")
	pd.Add("b", "2")
	pd.Add("c", "3")

	entries, err := pd.Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	var keys []string
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	sort.Strings(keys)
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}

	if err := pd.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if pd.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", pd.Count())
	}
}
