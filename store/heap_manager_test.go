package store

import (
	"math/rand"
	"testing"
)

func TestHeapManagerZeroLengthAllocate(t *testing.T) {
	m := NewHeapManager(8)
	h, err := m.Allocate(0)
	if err != nil {
		t.Fatalf("Allocate(0): %v", err)
	}
	b, err := m.GetAllocatedBlock(h)
	if err != nil {
		t.Fatalf("GetAllocatedBlock: %v", err)
	}
	if b.Length != 0 {
		t.Fatalf("length = %d, want 0", b.Length)
	}
	if err := m.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestHeapManagerInvalidHandle(t *testing.T) {
	m := NewHeapManager(8)
	if _, err := m.GetAllocatedBlock(Handle(999)); err == nil {
		t.Fatal("expected ErrInvalidHandle")
	}
	if err := m.Free(Handle(999)); err == nil {
		t.Fatal("expected ErrInvalidHandle from Free")
	}
}

// TestHeapManagerBestFitSplitAndCoalesce checks best-fit reuse, splitting,
// and coalescing together: a block_size=8 manager allocating three 3-byte
// blocks, freeing the middle one, allocating 2 bytes (which must land in
// the freed region and leave a 1-byte free residual), then freeing that
// allocation so it coalesces with the residual.
func TestHeapManagerBestFitSplitAndCoalesce(t *testing.T) {
	m := NewHeapManager(8)

	a, err := m.Allocate(3)
	if err != nil {
		t.Fatalf("allocate A: %v", err)
	}
	b, err := m.Allocate(3)
	if err != nil {
		t.Fatalf("allocate B: %v", err)
	}
	c, err := m.Allocate(3)
	if err != nil {
		t.Fatalf("allocate C: %v", err)
	}
	_ = c

	ba, _ := m.GetAllocatedBlock(a)
	if ba.Offset != 0 || ba.Length != 3 {
		t.Fatalf("A = %+v, want offset 0 length 3", ba)
	}
	bb, _ := m.GetAllocatedBlock(b)
	if bb.Offset != 3 || bb.Length != 3 {
		t.Fatalf("B = %+v, want offset 3 length 3", bb)
	}

	if err := m.Free(b); err != nil {
		t.Fatalf("free B: %v", err)
	}
	if err := m.Verify(); err != nil {
		t.Fatalf("Verify after free B: %v", err)
	}

	small, err := m.Allocate(2)
	if err != nil {
		t.Fatalf("allocate 2: %v", err)
	}
	bs, _ := m.GetAllocatedBlock(small)
	if bs.Offset != 3 || bs.Length != 2 {
		t.Fatalf("2-byte alloc = %+v, want to re-use B's region at offset 3", bs)
	}

	foundResidual := false
	for _, fb := range m.FreeBlocks() {
		if fb.Offset == 5 && fb.Length == 1 {
			foundResidual = true
		}
	}
	if !foundResidual {
		t.Fatalf("free blocks = %+v, want a 1-byte residual at offset 5", m.FreeBlocks())
	}

	if err := m.Free(small); err != nil {
		t.Fatalf("free 2-byte alloc: %v", err)
	}
	if err := m.Verify(); err != nil {
		t.Fatalf("Verify after coalesce: %v", err)
	}

	foundMerged := false
	for _, fb := range m.FreeBlocks() {
		if fb.Offset == 3 && fb.Length == 3 {
			foundMerged = true
		}
	}
	if !foundMerged {
		t.Fatalf("free blocks = %+v, want one block of length 3 at offset 3", m.FreeBlocks())
	}
}

func TestHeapManagerFragmentTooSmall(t *testing.T) {
	m := NewHeapManager(8)
	if _, _, err := m.Fragment(Block{Offset: 0, Length: 4}, 5); err == nil {
		t.Fatal("expected ErrBlockTooSmall")
	}
}

// TestHeapManagerRandomizedInvariants drives a long random sequence of
// allocate/free calls and checks Verify's partition and no-adjacent-free
// invariants hold after every single operation, regardless of the
// specific sequence of calls that produced the manager's current state.
func TestHeapManagerRandomizedInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	m := NewHeapManager(64)

	var live []Handle
	for i := 0; i < 2000; i++ {
		if len(live) == 0 || rnd.Intn(2) == 0 {
			length := uint64(rnd.Intn(200))
			h, err := m.Allocate(length)
			if err != nil {
				t.Fatalf("Allocate(%d): %v", length, err)
			}
			b, err := m.GetAllocatedBlock(h)
			if err != nil {
				t.Fatalf("GetAllocatedBlock: %v", err)
			}
			if b.Length != length {
				t.Fatalf("allocated length = %d, want %d", b.Length, length)
			}
			live = append(live, h)
		} else {
			idx := rnd.Intn(len(live))
			h := live[idx]
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
			if err := m.Free(h); err != nil {
				t.Fatalf("Free: %v", err)
			}
		}

		if err := m.Verify(); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
	}
}

// TestHeapManagerFindFreeBlockIsNonMutating checks that FindFreeBlock
// reports a large-enough candidate without removing anything from the
// free set.
func TestHeapManagerFindFreeBlockIsNonMutating(t *testing.T) {
	m := NewHeapManager(8)
	if _, err := m.Allocate(3); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	before := m.FreeBlocks()
	found, ok := m.FindFreeBlock(1)
	if !ok {
		t.Fatal("expected a free block candidate")
	}
	after := m.FreeBlocks()
	if len(before) != len(after) {
		t.Fatalf("FindFreeBlock mutated the free set: before %+v after %+v", before, after)
	}
	if found.Length < 1 {
		t.Fatalf("found block too small: %+v", found)
	}
}
