package generate

import (
	"fmt"

	"github.com/kubkon/witxhost/witx"
)

// abiSlot describes one scalar the wasm32 ABI trampoline signature
// carries for a single witx parameter. A type that
// needs more than one guest-side word (arrays, strings) lowers to more
// than one abiSlot, in declaration order.
type abiSlot struct {
	GoType string // int32, int64, float32 or float64
}

// abiParam is one witx.Param lowered to its ABI slots, together with
// its name and schema type.
type abiParam struct {
	Name  string
	Type  witx.Definition
	Slots []abiSlot
}

var i32Slot = abiSlot{GoType: "int32"}
var i64Slot = abiSlot{GoType: "int64"}
var f32Slot = abiSlot{GoType: "float32"}
var f64Slot = abiSlot{GoType: "float64"}

// lowerParam computes the ABI slots for one parameter or result type.
func (t *typeTable) lowerParam(name string, d witx.Definition) (abiParam, error) {
	slots, err := t.abiSlotsOf(d)
	if err != nil {
		return abiParam{}, err
	}
	return abiParam{Name: name, Type: d, Slots: slots}, nil
}

func (t *typeTable) abiSlotsOf(d witx.Definition) ([]abiSlot, error) {
	switch v := resolveAlias(d).(type) {
	case *witx.BuiltinType:
		switch v.Kind {
		case witx.BuiltinS64, witx.BuiltinU64:
			return []abiSlot{i64Slot}, nil
		case witx.BuiltinF32:
			return []abiSlot{f32Slot}, nil
		case witx.BuiltinF64:
			return []abiSlot{f64Slot}, nil
		case witx.BuiltinString:
			return []abiSlot{i32Slot, i32Slot}, nil
		case witx.BuiltinSize:
			if t.target.PointerWidth() == 8 {
				return []abiSlot{i64Slot}, nil
			}
			return []abiSlot{i32Slot}, nil
		default:
			return []abiSlot{i32Slot}, nil
		}
	case *witx.Enum:
		if v.Repr == witx.Repr64 {
			return []abiSlot{i64Slot}, nil
		}
		return []abiSlot{i32Slot}, nil
	case *witx.Flags:
		if v.Repr == witx.Repr64 {
			return []abiSlot{i64Slot}, nil
		}
		return []abiSlot{i32Slot}, nil
	case *witx.TaggedInt:
		if v.Repr == witx.Repr64 {
			return []abiSlot{i64Slot}, nil
		}
		return []abiSlot{i32Slot}, nil
	case *witx.Handle:
		return []abiSlot{i32Slot}, nil
	case *witx.PointerType, *witx.ConstPointerType:
		return []abiSlot{i32Slot}, nil
	case *witx.ArrayType:
		return []abiSlot{i32Slot, i32Slot}, nil
	case *witx.Record, *witx.Union:
		// Passed by an implicit const pointer: the schema author writes
		// the record into guest memory and passes its offset, the same
		// convention an explicit `const *my_record` param would use.
		return []abiSlot{i32Slot}, nil
	default:
		return nil, fmt.Errorf("generate: %T has no ABI lowering", d)
	}
}

func isRecordOrUnion(d witx.Definition) bool {
	switch resolveAlias(d).(type) {
	case *witx.Record, *witx.Union:
		return true
	default:
		return false
	}
}

func isPointerLike(d witx.Definition) bool {
	switch resolveAlias(d).(type) {
	case *witx.PointerType, *witx.ConstPointerType:
		return true
	default:
		return false
	}
}

func isArray(d witx.Definition) bool {
	_, ok := resolveAlias(d).(*witx.ArrayType)
	return ok
}

func isString(d witx.Definition) bool {
	b, ok := resolveAlias(d).(*witx.BuiltinType)
	return ok && b.Kind == witx.BuiltinString
}

func isEnum(d witx.Definition) (*witx.Enum, bool) {
	e, ok := resolveAlias(d).(*witx.Enum)
	return e, ok
}

func isFlags(d witx.Definition) (*witx.Flags, bool) {
	f, ok := resolveAlias(d).(*witx.Flags)
	return f, ok
}
