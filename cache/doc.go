// Package cache implements the two-tier caching dictionary built on top of
// package store's byte heap: CircularBuffer (the recency ring), LocalCache
// (the bounded in-memory LRU tier), SerializingCache and
// PersistentDictionary (the typed, unbounded persistent tier), and
// CachingDictionary, which composes the two tiers with promotion-on-hit
// and demotion-on-eviction into the module's single embedding API.
package cache
