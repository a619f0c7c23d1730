package generate

import (
	"fmt"

	"github.com/kubkon/witxhost/witx"
)

// codecExprOf returns the Go expression for the guestmem.Codec[T] value
// that reads/writes d, following the same alias chain goTypeOf does so
// an Alias to a pointer/array/string type gets the composite codec
// instead of being treated as an opaque named type.
func (t *typeTable) codecExprOf(cfg Config, d witx.Definition) (string, error) {
	switch v := resolveAlias(d).(type) {
	case *witx.BuiltinType:
		return t.builtinCodecExpr(v.Kind)
	case *witx.Enum:
		return UpperCamel(v.Name) + "Codec", nil
	case *witx.Flags:
		return UpperCamel(v.Name) + "Codec", nil
	case *witx.TaggedInt:
		return UpperCamel(v.Name) + "Codec", nil
	case *witx.Handle:
		return UpperCamel(v.Name) + "Codec", nil
	case *witx.Record:
		return UpperCamel(v.Name) + "Codec", nil
	case *witx.Union:
		return UpperCamel(v.Name) + "Codec", nil
	case *witx.PointerType:
		elemType, err := t.goTypeOf(v.Elem)
		if err != nil {
			return "", err
		}
		elemCodec, err := t.codecExprOf(cfg, v.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("guestmem.PointerCodec[%s]{Elem: %s}", elemType, elemCodec), nil
	case *witx.ConstPointerType:
		elemType, err := t.goTypeOf(v.Elem)
		if err != nil {
			return "", err
		}
		elemCodec, err := t.codecExprOf(cfg, v.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("guestmem.PointerCodec[%s]{Elem: %s}", elemType, elemCodec), nil
	case *witx.ArrayType:
		elemType, err := t.goTypeOf(v.Elem)
		if err != nil {
			return "", err
		}
		elemCodec, err := t.codecExprOf(cfg, v.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("guestmem.ArrayCodec[%s]{Elem: %s}", elemType, elemCodec), nil
	default:
		return "", fmt.Errorf("generate: no codec expression for %T", d)
	}
}

func (t *typeTable) builtinCodecExpr(k witx.Builtin) (string, error) {
	switch k {
	case witx.BuiltinS8:
		return "guestmem.I8", nil
	case witx.BuiltinS16:
		return "guestmem.I16", nil
	case witx.BuiltinS32:
		return "guestmem.I32", nil
	case witx.BuiltinS64:
		return "guestmem.I64", nil
	case witx.BuiltinU8:
		return "guestmem.U8", nil
	case witx.BuiltinU16:
		return "guestmem.U16", nil
	case witx.BuiltinU32:
		return "guestmem.U32", nil
	case witx.BuiltinU64:
		return "guestmem.U64", nil
	case witx.BuiltinF32:
		return "guestmem.F32", nil
	case witx.BuiltinF64:
		return "guestmem.F64", nil
	case witx.BuiltinChar:
		return "guestmem.U8", nil
	case witx.BuiltinSize:
		if t.target.PointerWidth() == 8 {
			return "guestmem.U64", nil
		}
		return "guestmem.U32", nil
	case witx.BuiltinString:
		return "guestmem.StringField", nil
	default:
		return "", fmt.Errorf("generate: unknown builtin %d", k)
	}
}
