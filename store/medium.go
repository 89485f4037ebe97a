package store

import "io"

// Medium is a []byte-like model of a random-access byte store: the
// capability a Heap needs from whatever bytes actually live behind it, be
// that a plain in-memory buffer or a temporary file. Reads and writes take
// an explicit offset rather than going through a mutable seek cursor, so a
// Medium has no notion of "current position" to get out of sync.
//
// A Medium is not safe for concurrent use; callers serialize access the
// same way the rest of this package's core does (see cache.Synchronized).
type Medium interface {
	io.ReaderAt
	io.WriterAt

	// Truncate grows or shrinks the medium to exactly size bytes. Growing
	// appends uninitialized bytes; their contents are not observable
	// before a Write.
	Truncate(size int64) error

	// Size reports the medium's current length in bytes.
	Size() int64

	// Close releases any resources held by the medium (e.g. an open file
	// descriptor). Close does not delete a backing file; Heap.Dispose does
	// that for a Heap created by NewFileHeap.
	Close() error
}
