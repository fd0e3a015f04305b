// Package source provides string interning for declaration names.
//
// Every name that appears in a declaration tree is interned once and referred
// to by StringID afterwards. The interner's snapshot doubles as the string
// table embedded in serialized module metadata: record name fields are
// indices into it.
package source

import (
	"slices"
)

// StringID identifies an interned string. Zero is the empty string.
type StringID uint32

// NoStringID is the sentinel for "no name"; it always resolves to "".
const NoStringID StringID = 0

// Interner deduplicates strings behind stable, append-only ids.
type Interner struct {
	byID  []string
	index map[string]StringID
}

// NewInterner returns an interner with the empty string pre-seeded at id 0.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the id for s, assigning the next free id on first sight.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// Copy so the table does not pin a caller's larger backing buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup resolves an id. Returns false for ids this interner never issued.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup resolves an id and panics if it is invalid.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}

// Has reports whether id was issued by this interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len returns the number of interned strings, counting the empty string.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of the table in id order.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
