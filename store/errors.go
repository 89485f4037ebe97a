package store

import "fmt"

// ErrInvalidHandle is returned whenever a Handle does not refer to a
// currently allocated Block, e.g. because it was never issued, already
// freed, or belongs to a different Heap.
type ErrInvalidHandle struct {
	Handle Handle
}

func (e *ErrInvalidHandle) Error() string {
	return fmt.Sprintf("store: invalid handle %d", e.Handle)
}

// ErrBlockTooSmall is returned by a split/fragment operation asked to carve
// more bytes out of a block than the block holds.
type ErrBlockTooSmall struct {
	Have uint64
	Want uint64
}

func (e *ErrBlockTooSmall) Error() string {
	return fmt.Sprintf("store: block of %d bytes too small to fragment %d bytes from", e.Have, e.Want)
}

// ErrOutOfAddressSpace is returned when the heap's address space cannot
// grow any further without overflowing a uint64 offset.
type ErrOutOfAddressSpace struct {
	HeapLength uint64
	Requested  uint64
}

func (e *ErrOutOfAddressSpace) Error() string {
	return fmt.Sprintf("store: cannot grow heap of length %d by %d bytes: address space exhausted", e.HeapLength, e.Requested)
}

// ErrLengthMismatch is returned by Heap.Write when the supplied payload's
// length does not equal the target block's length.
type ErrLengthMismatch struct {
	Handle Handle
	Want   uint64
	Got    uint64
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("store: handle %d expects %d bytes, got %d", e.Handle, e.Want, e.Got)
}

// ErrUnexpectedEndOfStream is returned by Heap.Read when the backing medium
// runs out of bytes before a block's full length has been read.
type ErrUnexpectedEndOfStream struct {
	Handle Handle
	Want   uint64
	Got    uint64
}

func (e *ErrUnexpectedEndOfStream) Error() string {
	return fmt.Sprintf("store: handle %d: unexpected end of stream after %d of %d bytes", e.Handle, e.Got, e.Want)
}
