package metadata

import (
	"fmt"

	"fortio.org/safecast"
)

// Table is a deduplicating, append-only id table. Intern assigns ids
// first-seen-wins; no id is ever reused, removed or renumbered within one
// serialization session.
type Table[K comparable] struct {
	ids  map[K]uint32
	keys []K
}

// NewTable returns an empty table.
func NewTable[K comparable]() *Table[K] {
	return &Table[K]{ids: make(map[K]uint32, 16)}
}

// Intern returns the id for k, assigning the next unused id on first sight.
func (t *Table[K]) Intern(k K) uint32 {
	if id, ok := t.ids[k]; ok {
		return id
	}
	id, err := safecast.Conv[uint32](len(t.keys))
	if err != nil {
		panic(fmt.Errorf("metadata: table overflow: %w", err))
	}
	t.ids[k] = id
	t.keys = append(t.keys, k)
	return id
}

// Has reports whether k already holds an id.
func (t *Table[K]) Has(k K) bool {
	_, ok := t.ids[k]
	return ok
}

// Len returns the number of interned keys.
func (t *Table[K]) Len() int {
	return len(t.keys)
}

// Keys returns the interned keys in id order. The returned slice is the
// table's backing storage; callers must not mutate it.
func (t *Table[K]) Keys() []K {
	return t.keys
}
