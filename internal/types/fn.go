package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// FuncInfo stores metadata for function types.
type FuncInfo struct {
	Params  []TypeID // parameter types, in order
	Result  TypeID
	Suspend bool // suspendable function type marker
}

// RegisterFunc creates or finds a function type.
func (in *Interner) RegisterFunc(params []TypeID, result TypeID, suspend bool) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindFunc {
			continue
		}
		if int(tt.Payload) >= len(in.funcs) {
			continue
		}
		info := in.funcs[tt.Payload]
		if info.Result == result && info.Suspend == suspend && slices.Equal(info.Params, params) {
			return id
		}
	}
	slot := in.appendFuncInfo(FuncInfo{
		Params:  cloneTypeArgs(params),
		Result:  result,
		Suspend: suspend,
	})
	return in.internRaw(Type{Kind: KindFunc, Payload: slot})
}

// FuncInfo retrieves function type metadata by TypeID.
func (in *Interner) FuncInfo(id TypeID) (*FuncInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunc {
		return nil, false
	}
	if int(tt.Payload) >= len(in.funcs) {
		return nil, false
	}
	return &in.funcs[tt.Payload], true
}

func (in *Interner) appendFuncInfo(info FuncInfo) uint32 {
	in.funcs = append(in.funcs, info)
	slot, err := safecast.Conv[uint32](len(in.funcs) - 1)
	if err != nil {
		panic(fmt.Errorf("func info overflow: %w", err))
	}
	return slot
}
