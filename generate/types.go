package generate

import (
	"fmt"
	"sync"

	"github.com/kubkon/witxhost/witx"
)

// typeInfo is the per-type information computed in the emitter's first
// pass: the size/alignment every field layout and trampoline needs,
// whether the type qualifies for zero-copy slice borrows, and whether
// it must drop equality/hash/debug because it transitively contains a
// union. Computing this ahead of emission is what lets EmitTypes emit
// record bodies correctly regardless of forward references in the
// schema, per the two-pass strategy spec.md §9 calls for.
type typeInfo struct {
	GoName      string
	Size        uint32
	Align       uintptr
	Transparent bool
	CopyOnly    bool
}

type typeTable struct {
	target Target
	mod    *witx.Module

	mu   sync.Mutex
	info map[witx.Definition]*typeInfo
}

func newTypeTable(mod *witx.Module, target Target) *typeTable {
	return &typeTable{target: target, mod: mod, info: map[witx.Definition]*typeInfo{}}
}

// infoOf is called concurrently across functions by ValidateModule's
// errgroup fan-out, so the cache map needs its own lock; computeInfo
// itself runs unlocked (it can recurse back into infoOf for a field's
// element type) and only the map reads/writes around it are guarded.
func (t *typeTable) infoOf(d witx.Definition) (*typeInfo, error) {
	t.mu.Lock()
	if info, ok := t.info[d]; ok {
		t.mu.Unlock()
		return info, nil
	}
	// Guard against the schema containing a genuine reference cycle
	// among records (C-layout records can't express one without an
	// indirection, so this only trips on a malformed schema).
	t.info[d] = nil
	t.mu.Unlock()

	info, err := t.computeInfo(d)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.info[d] = info
	t.mu.Unlock()
	return info, nil
}

func (t *typeTable) computeInfo(d witx.Definition) (*typeInfo, error) {
	switch v := d.(type) {
	case *witx.BuiltinType:
		return t.builtinInfo(v.Kind)
	case *witx.Alias:
		inner, err := t.infoOf(v.To)
		if err != nil {
			return nil, err
		}
		cp := *inner
		cp.GoName = UpperCamel(v.Name)
		return &cp, nil
	case *witx.Enum:
		repr, err := t.builtinInfo(reprBuiltin(v.Repr))
		if err != nil {
			return nil, err
		}
		return &typeInfo{GoName: UpperCamel(v.Name), Size: repr.Size, Align: repr.Align, Transparent: false}, nil
	case *witx.Flags:
		repr, err := t.builtinInfo(reprBuiltin(v.Repr))
		if err != nil {
			return nil, err
		}
		return &typeInfo{GoName: UpperCamel(v.Name), Size: repr.Size, Align: repr.Align, Transparent: false}, nil
	case *witx.TaggedInt:
		repr, err := t.builtinInfo(reprBuiltin(v.Repr))
		if err != nil {
			return nil, err
		}
		return &typeInfo{GoName: UpperCamel(v.Name), Size: repr.Size, Align: repr.Align, Transparent: true}, nil
	case *witx.Handle:
		return &typeInfo{GoName: UpperCamel(v.Name), Size: 4, Align: 4, Transparent: true}, nil
	case *witx.Record:
		return t.recordInfo(v)
	case *witx.Union:
		return t.unionInfo(v)
	case *witx.PointerType:
		elem, err := t.goTypeOf(v.Elem)
		if err != nil {
			return nil, err
		}
		return &typeInfo{GoName: "guestmem.Pointer[" + elem + "]", Size: 4, Align: 4, Transparent: false}, nil
	case *witx.ConstPointerType:
		elem, err := t.goTypeOf(v.Elem)
		if err != nil {
			return nil, err
		}
		return &typeInfo{GoName: "guestmem.Pointer[" + elem + "]", Size: 4, Align: 4, Transparent: false}, nil
	case *witx.ArrayType:
		elem, err := t.goTypeOf(v.Elem)
		if err != nil {
			return nil, err
		}
		return &typeInfo{GoName: "guestmem.ArrayPointer[" + elem + "]", Size: 8, Align: 4, Transparent: false}, nil
	default:
		return nil, fmt.Errorf("generate: unsupported definition type %T", d)
	}
}

func reprBuiltin(r witx.Repr) witx.Builtin {
	switch r {
	case witx.Repr8:
		return witx.BuiltinU8
	case witx.Repr16:
		return witx.BuiltinU16
	case witx.Repr32:
		return witx.BuiltinU32
	default:
		return witx.BuiltinU64
	}
}

func (t *typeTable) builtinInfo(k witx.Builtin) (*typeInfo, error) {
	switch k {
	case witx.BuiltinS8:
		return &typeInfo{GoName: "int8", Size: 1, Align: 1, Transparent: true}, nil
	case witx.BuiltinS16:
		return &typeInfo{GoName: "int16", Size: 2, Align: 2, Transparent: true}, nil
	case witx.BuiltinS32:
		return &typeInfo{GoName: "int32", Size: 4, Align: 4, Transparent: true}, nil
	case witx.BuiltinS64:
		return &typeInfo{GoName: "int64", Size: 8, Align: 8, Transparent: true}, nil
	case witx.BuiltinU8:
		return &typeInfo{GoName: "uint8", Size: 1, Align: 1, Transparent: true}, nil
	case witx.BuiltinU16:
		return &typeInfo{GoName: "uint16", Size: 2, Align: 2, Transparent: true}, nil
	case witx.BuiltinU32:
		return &typeInfo{GoName: "uint32", Size: 4, Align: 4, Transparent: true}, nil
	case witx.BuiltinU64:
		return &typeInfo{GoName: "uint64", Size: 8, Align: 8, Transparent: true}, nil
	case witx.BuiltinF32:
		return &typeInfo{GoName: "float32", Size: 4, Align: 4, Transparent: true}, nil
	case witx.BuiltinF64:
		return &typeInfo{GoName: "float64", Size: 8, Align: 8, Transparent: true}, nil
	case witx.BuiltinChar:
		return &typeInfo{GoName: "byte", Size: 1, Align: 1, Transparent: true}, nil
	case witx.BuiltinSize:
		w := uint32(t.target.PointerWidth())
		goName := "uint32"
		if w == 8 {
			goName = "uint64"
		}
		return &typeInfo{GoName: goName, Size: w, Align: uintptr(w), Transparent: true}, nil
	case witx.BuiltinString:
		w := uint32(t.target.PointerWidth())
		return &typeInfo{GoName: "guestmem.StringPointer", Size: w * 2, Align: uintptr(w), Transparent: false}, nil
	default:
		return nil, fmt.Errorf("generate: unknown builtin %d", k)
	}
}

// align rounds n up to the next multiple of a (a must be a power of two).
func align(n uint32, a uintptr) uint32 {
	if a <= 1 {
		return n
	}
	m := uint32(a)
	return (n + m - 1) / m * m
}

func (t *typeTable) recordInfo(r *witx.Record) (*typeInfo, error) {
	var offset uint32
	var maxAlign uintptr = 1
	copyOnly := false
	for _, f := range r.Fields {
		fi, err := t.infoOf(f.Type)
		if err != nil {
			return nil, fmt.Errorf("record %s field %s: %w", r.Name, f.Name, err)
		}
		offset = align(offset, fi.Align)
		offset += fi.Size
		if fi.Align > maxAlign {
			maxAlign = fi.Align
		}
		if fi.CopyOnly {
			copyOnly = true
		}
		if _, isUnion := f.Type.(*witx.Union); isUnion {
			copyOnly = true
		}
	}
	return &typeInfo{
		GoName:      UpperCamel(r.Name),
		Size:        align(offset, maxAlign),
		Align:       maxAlign,
		Transparent: false,
		CopyOnly:    copyOnly,
	}, nil
}

func (t *typeTable) unionInfo(u *witx.Union) (*typeInfo, error) {
	var maxSize uint32
	var maxAlign uintptr = 1
	for _, a := range u.Arms {
		ai, err := t.infoOf(a.Type)
		if err != nil {
			return nil, fmt.Errorf("union %s arm %s: %w", u.Name, a.Name, err)
		}
		if ai.Size > maxSize {
			maxSize = ai.Size
		}
		if ai.Align > maxAlign {
			maxAlign = ai.Align
		}
	}
	return &typeInfo{
		GoName:      UpperCamel(u.Name),
		Size:        align(maxSize, maxAlign),
		Align:       maxAlign,
		Transparent: false,
		CopyOnly:    true,
	}, nil
}

// goTypeOf returns the Go type syntax used to reference d from a field,
// parameter, or result position.
func (t *typeTable) goTypeOf(d witx.Definition) (string, error) {
	info, err := t.infoOf(d)
	if err != nil {
		return "", err
	}
	return info.GoName, nil
}

// resolveAlias follows a chain of Alias definitions to the underlying
// declaration, the way record and array field codecs need to in order
// to special-case pointer/array/string storage regardless of how many
// alias hops sit on top of it.
func resolveAlias(d witx.Definition) witx.Definition {
	for {
		a, ok := d.(*witx.Alias)
		if !ok {
			return d
		}
		d = a.To
	}
}

// fieldOffsets returns, for each field of r in order, its byte offset
// within the record — the same C-style sequential layout recordInfo
// computed the size from.
func (t *typeTable) fieldOffsets(r *witx.Record) ([]uint32, error) {
	offsets := make([]uint32, len(r.Fields))
	var offset uint32
	for i, f := range r.Fields {
		fi, err := t.infoOf(f.Type)
		if err != nil {
			return nil, err
		}
		offset = align(offset, fi.Align)
		offsets[i] = offset
		offset += fi.Size
	}
	return offsets, nil
}
