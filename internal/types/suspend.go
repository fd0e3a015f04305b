package types

// ContainsSuspend reports whether the type, or any type reachable from it
// (array elements, class type arguments, function parameters and results),
// carries a suspend function marker. Serialized declarations whose signature
// contains such a type need an extra version requirement so that older
// toolchains reject the metadata instead of misreading it.
func (in *Interner) ContainsSuspend(id TypeID) bool {
	seen := make(map[TypeID]bool, 8)
	return in.containsSuspend(id, seen)
}

func (in *Interner) containsSuspend(id TypeID, seen map[TypeID]bool) bool {
	if id == NoTypeID || seen[id] {
		return false
	}
	seen[id] = true
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindArray:
		return in.containsSuspend(tt.Elem, seen)
	case KindClass:
		info, ok := in.ClassInfo(id)
		if !ok {
			return false
		}
		for _, arg := range info.TypeArgs {
			if in.containsSuspend(arg, seen) {
				return true
			}
		}
		return false
	case KindFunc:
		info, ok := in.FuncInfo(id)
		if !ok {
			return false
		}
		if info.Suspend {
			return true
		}
		for _, p := range info.Params {
			if in.containsSuspend(p, seen) {
				return true
			}
		}
		return in.containsSuspend(info.Result, seen)
	default:
		return false
	}
}
