package store

import (
	"fmt"
	"sort"
)

// DefaultBlockSize is the granularity HeapManager grows the address space
// by when no free block satisfies a request.
const DefaultBlockSize = 2048

// HeapManager maintains the free list and the allocated index over an
// abstract linear address space [0, heapLength). It never touches storage
// — binding the address space to actual bytes is Heap's job.
type HeapManager struct {
	blockSize  uint64
	heapLength uint64
	nextHandle uint64

	// free is kept as an ordered slice, not a map, so that best-fit
	// selection is deterministic within a single run — Go randomizes map
	// iteration order on purpose, which would violate the "stable within
	// a single run" tie-break requirement.
	free []Block

	allocated map[Handle]Block
}

// NewHeapManager returns an empty HeapManager. A blockSize <= 0 is replaced
// by DefaultBlockSize.
func NewHeapManager(blockSize uint64) *HeapManager {
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}

	return &HeapManager{
		blockSize:  blockSize,
		nextHandle: 1,
		allocated:  map[Handle]Block{},
	}
}

// HeapLength returns the current size of the managed address space.
func (m *HeapManager) HeapLength() uint64 { return m.heapLength }

func (m *HeapManager) newHandle() Handle {
	h := Handle(m.nextHandle)
	m.nextHandle++
	return h
}

// Allocate returns a handle to a newly allocated block of exactly length
// bytes: an existing free block is reused best-fit if one is large enough,
// otherwise the address space grows to make room.
func (m *HeapManager) Allocate(length uint64) (Handle, error) {
	if length == 0 {
		h := m.newHandle()
		m.allocated[h] = Block{Handle: h, Offset: m.heapLength, Length: 0}
		return h, nil
	}

	idx, ok := m.findFreeIndex(length)
	if !ok {
		if _, err := m.CreateFreeBlock(length); err != nil {
			return 0, err
		}
		idx, ok = m.findFreeIndex(length)
		if !ok {
			// CreateFreeBlock guarantees a sufficiently large block;
			// reaching here indicates a logic error, not caller misuse.
			panic("store: grew heap but still found no fitting free block")
		}
	}

	free := m.free[idx]
	used, remainder, err := m.Fragment(free, length)
	if err != nil {
		// Cannot happen: findFreeIndex only returns blocks with
		// Length >= length.
		return 0, err
	}

	if remainder.Length == 0 && remainder.Handle == 0 {
		m.removeFreeAt(idx)
	} else {
		m.free[idx] = remainder
	}

	m.allocated[used.Handle] = used
	return used.Handle, nil
}

// findFreeIndex performs the best-fit search: among free blocks with
// length >= the request, the smallest one; ties broken by the first
// encountered in free's (stable, insertion-influenced) order.
func (m *HeapManager) findFreeIndex(length uint64) (int, bool) {
	best := -1
	for i, b := range m.free {
		if b.Length < length {
			continue
		}
		if best == -1 || b.Length < m.free[best].Length {
			best = i
		}
	}
	return best, best != -1
}

func (m *HeapManager) removeFreeAt(idx int) {
	m.free = append(m.free[:idx], m.free[idx+1:]...)
}

// FindFreeBlock reports the block best-fit would choose for length, without
// allocating it.
func (m *HeapManager) FindFreeBlock(length uint64) (Block, bool) {
	idx, ok := m.findFreeIndex(length)
	if !ok {
		return Block{}, false
	}
	return m.free[idx], true
}

// GetAllocatedBlock returns the block registered under handle.
func (m *HeapManager) GetAllocatedBlock(handle Handle) (Block, error) {
	b, ok := m.allocated[handle]
	if !ok {
		return Block{}, &ErrInvalidHandle{Handle: handle}
	}
	return b, nil
}

// CreateFreeBlock extends the address space by the smallest multiple of
// blockSize that is >= minLength and returns the newly free region.
//
// If the existing free set already has a block ending exactly where the
// address space used to end, the new region is coalesced into it rather
// than appended as a separate adjacent block: the appended region always
// starts at the current heapLength, so the only block it could ever be
// adjacent to is the one preceding it, and leaving the two apart would
// violate the free-set's no-adjacent-free invariant the instant growth
// happens, before any caller gets a chance to allocate from it.
func (m *HeapManager) CreateFreeBlock(minLength uint64) (Block, error) {
	grow := roundUp(minLength, m.blockSize)

	offset := m.heapLength
	newLength := offset + grow
	if newLength < offset {
		return Block{}, &ErrOutOfAddressSpace{HeapLength: m.heapLength, Requested: grow}
	}

	length := grow
	if i := m.findFreeEndingAt(offset); i != -1 {
		offset = m.free[i].Offset
		length = m.free[i].Length + grow
		m.removeFreeAt(i)
	}

	b := Block{Handle: m.newHandle(), Offset: offset, Length: length}
	m.free = append(m.free, b)
	m.heapLength = newLength
	return b, nil
}

func roundUp(n, multiple uint64) uint64 {
	if multiple == 0 {
		return n
	}
	if rem := n % multiple; rem != 0 {
		n += multiple - rem
	}
	if n < multiple {
		n = multiple
	}
	return n
}

// Fragment splits an over-sized free block into a low allocated-shaped
// region of length bytes plus a remainder. It does not mutate the free set
// or allocated index itself; it is a pure helper for callers (here, only
// Allocate) who then register the pieces. Returns ErrBlockTooSmall if
// block.Length < length.
func (m *HeapManager) Fragment(block Block, length uint64) (used Block, remainder Block, err error) {
	if block.Length < length {
		return Block{}, Block{}, &ErrBlockTooSmall{Have: block.Length, Want: length}
	}

	used = Block{Handle: m.newHandle(), Offset: block.Offset, Length: length}
	if block.Length == length {
		return used, Block{}, nil
	}

	remainder = Block{
		Handle: m.newHandle(),
		Offset: block.Offset + length,
		Length: block.Length - length,
	}
	return used, remainder, nil
}

// Free removes handle from the allocated index, coalesces the resulting
// block with an immediately-adjacent preceding and/or following free block
// if any, and returns the (possibly merged) block to the free set.
// Coalescing never shrinks heapLength.
func (m *HeapManager) Free(handle Handle) error {
	b, ok := m.allocated[handle]
	if !ok {
		return &ErrInvalidHandle{Handle: handle}
	}
	delete(m.allocated, handle)

	if b.Length == 0 {
		return nil
	}

	// Preceding: a free block whose end meets b's start.
	if i := m.findFreeEndingAt(b.Offset); i != -1 {
		b = Block{Handle: m.newHandle(), Offset: m.free[i].Offset, Length: m.free[i].Length + b.Length}
		m.removeFreeAt(i)
	}

	// Following: a free block whose start meets b's end.
	if i := m.findFreeStartingAt(b.end()); i != -1 {
		b = Block{Handle: m.newHandle(), Offset: b.Offset, Length: b.Length + m.free[i].Length}
		m.removeFreeAt(i)
	}

	m.free = append(m.free, b)
	return nil
}

func (m *HeapManager) findFreeEndingAt(offset uint64) int {
	for i, b := range m.free {
		if b.end() == offset {
			return i
		}
	}
	return -1
}

func (m *HeapManager) findFreeStartingAt(offset uint64) int {
	for i, b := range m.free {
		if b.Offset == offset {
			return i
		}
	}
	return -1
}

// FreeBlocks returns a snapshot of the current free set, in no particular
// externally-meaningful order. It exists for diagnostics and tests (see
// Verify); production code has no need to enumerate free blocks.
func (m *HeapManager) FreeBlocks() []Block {
	out := make([]Block, len(m.free))
	copy(out, m.free)
	return out
}

// AllocatedBlocks returns a snapshot of the current allocated index.
func (m *HeapManager) AllocatedBlocks() map[Handle]Block {
	out := make(map[Handle]Block, len(m.allocated))
	for h, b := range m.allocated {
		out[h] = b
	}
	return out
}

// Verify non-destructively checks the structural invariants a HeapManager
// must hold: the allocated and free blocks partition [0, heapLength)
// exactly (no gaps, no overlaps, ignoring zero-length blocks, which occupy
// no address-space bytes), and no two free blocks are adjacent. It returns
// the first violation found, or nil.
//
// This is an optional consistency check for callers that want it (tests,
// diagnostics); it is not wired into Allocate/Free itself.
func (m *HeapManager) Verify() error {
	type span struct {
		offset, length uint64
		free           bool
	}

	var spans []span
	for _, b := range m.free {
		if b.Length > 0 {
			spans = append(spans, span{b.Offset, b.Length, true})
		}
	}
	for _, b := range m.allocated {
		if b.Length > 0 {
			spans = append(spans, span{b.Offset, b.Length, false})
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].offset < spans[j].offset })

	var cursor uint64
	var prevFree bool
	for i, s := range spans {
		if s.offset != cursor {
			return fmt.Errorf("store: gap or overlap at offset %d (want %d)", s.offset, cursor)
		}
		if i > 0 && s.free && prevFree {
			return fmt.Errorf("store: adjacent free blocks at offset %d", s.offset)
		}
		cursor = s.offset + s.length
		prevFree = s.free
	}

	if cursor != m.heapLength {
		return fmt.Errorf("store: spans cover [0, %d) but heap length is %d", cursor, m.heapLength)
	}

	return nil
}
