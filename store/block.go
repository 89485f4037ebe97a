package store

// Block is an immutable description of one contiguous region of the heap's
// address space: {handle, offset, length}. A Block is either allocated
// (indexed by Handle in HeapManager's allocated map) or free (a member of
// the free set); it is never both, and the spec forbids tracking the same
// region under two different handles at once.
type Block struct {
	Handle Handle
	Offset uint64
	Length uint64
}

// end returns the offset one past the last byte of b.
func (b Block) end() uint64 {
	return b.Offset + b.Length
}

// adjacentBefore reports whether b ends exactly where other begins, i.e.
// b is immediately to the left of other in the address space.
func (b Block) adjacentBefore(other Block) bool {
	return b.end() == other.Offset
}
