package store

// Handle is an opaque identity referring to one Block. Two handles compare
// equal iff their underlying values are equal; the value itself carries no
// meaning (in particular it is not an offset, and must not be treated as
// one) — that indirection is what would let a future compacting allocator
// relocate a block's bytes without invalidating handles held by callers.
//
// The zero Handle is reserved and never issued by HeapManager; it is used
// internally to mean "no block."
type Handle uint64
