package store

import (
	"bytes"
	"io"

	"modernc.org/mathutil"
)

// pageBits/pageSize chunk MemMedium's backing storage into a sparse map of
// fixed-size pages rather than one big growable []byte, so that a heap
// which grows to gigabytes without ever touching most of it does not pay
// for that space up front.
const (
	pageBits = 12
	pageSize = 1 << pageBits
	pageMask = pageSize - 1
)

type memPage = [pageSize]byte

var zeroPage memPage

// MemMedium is an in-memory Medium. It never errors on Truncate/WriteAt/
// Close, and ReadAt's only error is io.EOF for a read that reaches the end
// of the medium; the error results exist to satisfy Medium.
type MemMedium struct {
	pages map[int64]*memPage
	size  int64
}

var _ Medium = (*MemMedium)(nil)

// NewMemMedium returns an empty in-memory Medium.
func NewMemMedium() *MemMedium {
	return &MemMedium{pages: map[int64]*memPage{}}
}

// Size implements Medium.
func (m *MemMedium) Size() int64 { return m.size }

// Close implements Medium.
func (m *MemMedium) Close() error { return nil }

// Truncate implements Medium.
func (m *MemMedium) Truncate(size int64) error {
	if size < 0 {
		size = 0
	}

	if size == 0 {
		m.pages = map[int64]*memPage{}
		m.size = 0
		return nil
	}

	first := size >> pageBits
	if size&pageMask != 0 {
		first++
	}
	last := m.size >> pageBits
	if m.size&pageMask != 0 {
		last++
	}
	for ; first < last; first++ {
		delete(m.pages, first)
	}

	m.size = size
	return nil
}

// ReadAt implements io.ReaderAt.
func (m *MemMedium) ReadAt(b []byte, off int64) (n int, err error) {
	avail := m.size - off
	if avail <= 0 {
		return 0, io.EOF
	}

	pgI := off >> pageBits
	pgO := int(off & pageMask)
	rem := len(b)
	short := false
	if int64(rem) >= avail {
		rem = int(avail)
		short = true
	}

	for rem > 0 {
		pg := m.pages[pgI]
		if pg == nil {
			pg = &zeroPage
		}
		nc := copy(b[:mathutil.Min(rem, pageSize)], pg[pgO:])
		pgI++
		pgO = 0
		rem -= nc
		n += nc
		b = b[nc:]
	}

	if short {
		err = io.EOF
	}
	return n, err
}

// WriteAt implements io.WriterAt.
func (m *MemMedium) WriteAt(b []byte, off int64) (n int, err error) {
	pgI := off >> pageBits
	pgO := int(off & pageMask)
	n = len(b)
	rem := n

	for rem != 0 {
		var nc int
		if pgO == 0 && rem >= pageSize && bytes.Equal(b[:pageSize], zeroPage[:]) {
			delete(m.pages, pgI)
			nc = pageSize
		} else {
			pg := m.pages[pgI]
			if pg == nil {
				pg = new(memPage)
				m.pages[pgI] = pg
			}
			nc = copy(pg[pgO:], b)
		}
		pgI++
		pgO = 0
		rem -= nc
		b = b[nc:]
	}

	m.size = mathutil.MaxInt64(m.size, off+int64(n))
	return n, nil
}
