package types

import (
	"fmt"

	"fortio.org/safecast"

	"lumen/internal/source"
)

// ClassInfo stores metadata for a nominal class type.
type ClassInfo struct {
	Name     source.StringID
	TypeArgs []TypeID
}

// RegisterClass allocates a fresh nominal class type slot and returns its
// TypeID. Every registration is a distinct type: nominal identity, not
// structural.
func (in *Interner) RegisterClass(name source.StringID) TypeID {
	slot := in.appendClassInfo(ClassInfo{Name: name})
	return in.internRaw(Type{Kind: KindClass, Payload: slot})
}

// RegisterClassInstance allocates a class instantiation with concrete type
// arguments.
func (in *Interner) RegisterClassInstance(name source.StringID, args []TypeID) TypeID {
	slot := in.appendClassInfo(ClassInfo{Name: name, TypeArgs: cloneTypeArgs(args)})
	return in.internRaw(Type{Kind: KindClass, Payload: slot})
}

// ClassInfo returns metadata for the provided class TypeID.
func (in *Interner) ClassInfo(id TypeID) (*ClassInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindClass {
		return nil, false
	}
	if int(tt.Payload) >= len(in.classes) {
		return nil, false
	}
	return &in.classes[tt.Payload], true
}

func (in *Interner) appendClassInfo(info ClassInfo) uint32 {
	in.classes = append(in.classes, ClassInfo{
		Name:     info.Name,
		TypeArgs: cloneTypeArgs(info.TypeArgs),
	})
	slot, err := safecast.Conv[uint32](len(in.classes) - 1)
	if err != nil {
		panic(fmt.Errorf("class info overflow: %w", err))
	}
	return slot
}

func cloneTypeArgs(args []TypeID) []TypeID {
	if len(args) == 0 {
		return nil
	}
	out := make([]TypeID, len(args))
	copy(out, args)
	return out
}
