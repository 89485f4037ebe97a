package store

import (
	"io"
	"os"
)

// Heap binds a HeapManager to a concrete Medium and performs the byte
// transfers the manager's blocks describe: HeapManager tracks offsets and
// lengths, Heap is the layer that actually reads and writes bytes and
// keeps the medium's length in sync with the tracked address space.
type Heap struct {
	manager *HeapManager
	medium  Medium

	// owned is true when Heap created medium (a MemMedium/FileMedium it
	// constructed itself) and so must Close it on Dispose. A Heap wrapping
	// a caller-supplied, borrowed Medium must not close it: the caller
	// retains responsibility for that medium's lifetime.
	owned bool

	// path is set only for a Heap that owns a FileMedium it created
	// itself; Dispose removes this path after closing the medium.
	path string
}

// NewHeap binds manager to a borrowed medium: Dispose will not close
// medium. Use this when the caller manages the medium's lifetime
// independently (e.g. it is shared, or closed elsewhere).
func NewHeap(manager *HeapManager, medium Medium) *Heap {
	return &Heap{manager: manager, medium: medium}
}

// NewMemHeap returns a Heap over a fresh, owned MemMedium.
func NewMemHeap(blockSize uint64) *Heap {
	return &Heap{manager: NewHeapManager(blockSize), medium: NewMemMedium(), owned: true}
}

// NewFileHeap creates a temporary file in dir (os.TempDir if dir == "") and
// returns a Heap over it; Dispose closes and removes the file, so the
// caller never has to track the temporary path itself.
func NewFileHeap(blockSize uint64, dir string) (*Heap, error) {
	f, err := os.CreateTemp(dir, "heap-*.tmp")
	if err != nil {
		return nil, err
	}

	medium, err := NewFileMedium(f)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}

	return &Heap{manager: NewHeapManager(blockSize), medium: medium, owned: true, path: f.Name()}, nil
}

// Manager exposes the underlying HeapManager, primarily for tests that
// assert structural invariants directly.
func (h *Heap) Manager() *HeapManager { return h.manager }

// Allocate delegates to the HeapManager and, if that grows the address
// space, extends the medium first so medium.Size() == heapLength before the
// new block is usable.
func (h *Heap) Allocate(length uint64) (Handle, error) {
	before := h.manager.heapLength
	handle, err := h.manager.Allocate(length)
	if err != nil {
		return 0, err
	}

	if after := h.manager.heapLength; after != before {
		if err := h.medium.Truncate(int64(after)); err != nil {
			return 0, err
		}
	}

	return handle, nil
}

// Read returns exactly block.Length bytes read from the medium at
// block.Offset, looping until the full length is obtained. Reaching the end
// of the medium first is ErrUnexpectedEndOfStream.
func (h *Heap) Read(handle Handle) ([]byte, error) {
	block, err := h.manager.GetAllocatedBlock(handle)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, block.Length)
	if block.Length == 0 {
		return buf, nil
	}

	var got uint64
	for got < block.Length {
		n, err := h.medium.ReadAt(buf[got:], int64(block.Offset+got))
		got += uint64(n)
		if err != nil {
			if err == io.EOF && got == block.Length {
				break
			}
			return nil, &ErrUnexpectedEndOfStream{Handle: handle, Want: block.Length, Got: got}
		}
	}

	return buf, nil
}

// Write requires len(b) == the target block's length and writes the full
// buffer at the block's offset.
func (h *Heap) Write(handle Handle, b []byte) error {
	block, err := h.manager.GetAllocatedBlock(handle)
	if err != nil {
		return err
	}

	if uint64(len(b)) != block.Length {
		return &ErrLengthMismatch{Handle: handle, Want: block.Length, Got: uint64(len(b))}
	}

	if block.Length == 0 {
		return nil
	}

	var wrote uint64
	for wrote < block.Length {
		n, err := h.medium.WriteAt(b[wrote:], int64(block.Offset+wrote))
		wrote += uint64(n)
		if err != nil {
			return err
		}
	}

	return nil
}

// Free delegates to the HeapManager; the medium is left untouched, since
// coalescing never shrinks the address space.
func (h *Heap) Free(handle Handle) error {
	return h.manager.Free(handle)
}

// Dispose closes the medium iff this Heap owns it, and additionally removes
// the backing file for a Heap created by NewFileHeap. Dispose is not
// idempotent at this layer, and neither is SerializingCache.Dispose, which
// only delegates here: a second call on a file-owning Heap closes an
// already-closed file and removes an already-removed path, and returns the
// resulting error. CachingDictionary.Dispose is the layer that guards
// against repeated calls.
func (h *Heap) Dispose() error {
	if !h.owned {
		return nil
	}

	err := h.medium.Close()
	if h.path != "" {
		if rerr := os.Remove(h.path); err == nil {
			err = rerr
		}
	}
	return err
}
