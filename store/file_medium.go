package store

import (
	"os"

	"modernc.org/mathutil"
)

// FileMedium is an os.File-backed Medium intended for a temporary, scratch
// backing file — it does not implement any write-ahead logging or
// transactional protection, so a crash mid-write can leave it corrupt.
// That is an acceptable trade-off for a file that only ever backs a single
// process's working set and is never expected to outlive it.
type FileMedium struct {
	f    *os.File
	size int64
}

var _ Medium = (*FileMedium)(nil)

// NewFileMedium wraps f, an already-open file, as a Medium. The caller
// remains responsible for eventually removing f's path from disk unless it
// constructs the file through NewFileHeap, which does that automatically.
func NewFileMedium(f *os.File) (*FileMedium, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	return &FileMedium{f: f, size: fi.Size()}, nil
}

// Size implements Medium.
func (m *FileMedium) Size() int64 { return m.size }

// Close implements Medium.
func (m *FileMedium) Close() error { return m.f.Close() }

// Truncate implements Medium.
func (m *FileMedium) Truncate(size int64) error {
	if size < 0 {
		size = 0
	}
	if err := m.f.Truncate(size); err != nil {
		return err
	}
	m.size = size
	return nil
}

// ReadAt implements io.ReaderAt.
func (m *FileMedium) ReadAt(b []byte, off int64) (int, error) {
	return m.f.ReadAt(b, off)
}

// WriteAt implements io.WriterAt.
func (m *FileMedium) WriteAt(b []byte, off int64) (int, error) {
	n, err := m.f.WriteAt(b, off)
	m.size = mathutil.MaxInt64(m.size, off+int64(n))
	return n, err
}

// Name returns the path of the underlying file.
func (m *FileMedium) Name() string { return m.f.Name() }
