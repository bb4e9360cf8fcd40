package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Accessor is the cache-aside layer over a KV. Reads go to the in-memory map
// first and fall through to the durable store on a miss; writes go through to
// the durable store and refresh the map unconditionally. The cache is scoped
// to the process lifetime and is only ever invalidated by Put or Delete.
//
// The original client host was single-threaded; a Go HTTP server is not, so
// the map is guarded by a lock. Concurrent read-modify-write of the same
// collection is still last-write-wins — the lock protects the map, not the
// callers' staleness.
type Accessor struct {
	kv KV

	mu      sync.RWMutex
	entries map[string][]byte
	writes  uint64
}

func NewAccessor(kv KV) *Accessor {
	return &Accessor{kv: kv, entries: make(map[string][]byte)}
}

// Get returns the cached value for key, reading through to the durable store
// on a miss. Absence is cached too and returned as nil.
func (a *Accessor) Get(key string) ([]byte, error) {
	a.mu.RLock()
	value, ok := a.entries[key]
	writes := a.writes
	a.mu.RUnlock()
	if ok {
		return value, nil
	}

	value, _, err := a.kv.Read(key)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	// A Put or Delete can land while the durable read is in flight, making
	// what was just read stale. Only fill the entry when no write happened;
	// otherwise prefer the current entry and leave a deleted key uncached.
	if a.writes == writes {
		a.entries[key] = value
	} else if cached, ok := a.entries[key]; ok {
		value = cached
	}
	a.mu.Unlock()
	return value, nil
}

// Put writes through to the durable store and refreshes the cache entry. The
// cache is only updated after a successful durable write, so a failed Put
// never leaves the cache ahead of the store.
func (a *Accessor) Put(key string, value []byte) error {
	if err := a.kv.Write(key, value); err != nil {
		return err
	}
	a.mu.Lock()
	a.entries[key] = value
	a.writes++
	a.mu.Unlock()
	return nil
}

// Delete removes the key from the durable store and the cache.
func (a *Accessor) Delete(key string) error {
	if err := a.kv.Delete(key); err != nil {
		return err
	}
	a.mu.Lock()
	delete(a.entries, key)
	a.writes++
	a.mu.Unlock()
	return nil
}

// GetJSON unmarshals the collection under key into dst. It reports false and
// leaves dst untouched when the key has never been written.
func (a *Accessor) GetJSON(key string, dst any) (bool, error) {
	value, err := a.Get(key)
	if err != nil {
		return false, err
	}
	if value == nil {
		return false, nil
	}
	if err := json.Unmarshal(value, dst); err != nil {
		return false, fmt.Errorf("decoding %q: %w", key, err)
	}
	return true, nil
}

// PutJSON marshals src and writes it through under key.
func (a *Accessor) PutJSON(key string, src any) error {
	value, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	return a.Put(key, value)
}
