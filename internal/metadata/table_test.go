package metadata

import (
	"testing"

	"lumen/internal/types"
)

func TestTableFirstSeenWins(t *testing.T) {
	tab := NewTable[types.TypeID]()
	a := tab.Intern(types.TypeID(7))
	b := tab.Intern(types.TypeID(7))
	if a != b {
		t.Fatalf("structurally equal keys must share an id: %d vs %d", a, b)
	}
	c := tab.Intern(types.TypeID(9))
	if c == a {
		t.Fatalf("a new key must get a previously unused id")
	}
	if c != 1 {
		t.Fatalf("ids must be assigned monotonically: got %d", c)
	}
}

func TestTableKeysFollowIDOrder(t *testing.T) {
	tab := NewTable[VersionRequirement]()
	first := VersionRequirement{Major: 1, Minor: 3}
	second := VersionRequirement{Major: 2, Kind: RequireCompilerVersion}
	tab.Intern(first)
	tab.Intern(second)
	tab.Intern(first) // no-op
	keys := tab.Keys()
	if len(keys) != 2 || keys[0] != first || keys[1] != second {
		t.Fatalf("keys must stay in id order with no duplicates: %v", keys)
	}
	if tab.Len() != 2 {
		t.Fatalf("Len mismatch")
	}
	if !tab.Has(first) || tab.Has(VersionRequirement{Major: 9}) {
		t.Fatalf("Has must reflect interned keys only")
	}
}
