package types

import (
	"fmt"

	"fortio.org/safecast"

	"lumen/internal/source"
)

// TypeParamInfo stores metadata for a declared type parameter.
type TypeParamInfo struct {
	Name  source.StringID
	Owner uint32 // opaque owner key supplied by the declaring scope
	Index uint32 // position among the owner's parameters
}

type tpKey struct {
	Owner uint32
	Index uint32
}

// RegisterTypeParam creates or finds the type for a declared type parameter.
// Identity is (owner, index): the same declared parameter always resolves to
// the same TypeID no matter how often it is requested.
func (in *Interner) RegisterTypeParam(name source.StringID, owner, index uint32) TypeID {
	key := tpKey{Owner: owner, Index: index}
	if id, ok := in.tpIndex[key]; ok {
		return id
	}
	slot := in.appendTypeParamInfo(TypeParamInfo{Name: name, Owner: owner, Index: index})
	id := in.internRaw(Type{Kind: KindTypeParam, Payload: slot})
	in.tpIndex[key] = id
	return id
}

// TypeParamInfo retrieves type parameter metadata by TypeID.
func (in *Interner) TypeParamInfo(id TypeID) (*TypeParamInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeParam {
		return nil, false
	}
	if int(tt.Payload) >= len(in.typeParams) {
		return nil, false
	}
	return &in.typeParams[tt.Payload], true
}

func (in *Interner) appendTypeParamInfo(info TypeParamInfo) uint32 {
	in.typeParams = append(in.typeParams, info)
	slot, err := safecast.Conv[uint32](len(in.typeParams) - 1)
	if err != nil {
		panic(fmt.Errorf("type param info overflow: %w", err))
	}
	return slot
}
