// Package store implements the handle-based byte heap: a free-list
// allocator (HeapManager) over an abstract linear address space, bound to a
// concrete byte medium (Heap) — either an in-memory buffer or a temporary
// file. It has no notion of keys, values, or caching; those live in package
// cache, layered on top.
package store
