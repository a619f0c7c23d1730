package generate

import (
	"fmt"

	"github.com/kubkon/witxhost/witx"
)

// EmitTypes walks mod.Types and emits the Go source for every declared
// type: the Go type itself, plus a guestmem.Codec[T] implementation
// (and, for enums/flags/handles, the constructors and helper methods a
// hand-written host binding would carry). Like fuse/opcode.go's
// per-opcode dispatch table, the emitted file is one flat sequence of
// declarations rather than one file per type — easier to review as a
// single artifact.
//
// Emission is two passes: the first (typeTable, built in types.go)
// computes every type's size, alignment and name regardless of
// declaration order, so the second pass below can reference a type
// declared later in the schema without special-casing forward
// references.
func EmitTypes(mod *witx.Module, cfg Config) ([]byte, error) {
	cfg = cfg.withDefaults(mod.Name)
	tbl := newTypeTable(mod, cfg.Target)
	for _, d := range mod.Types {
		if _, err := tbl.infoOf(d); err != nil {
			return nil, err
		}
	}

	w := &writer{}
	w.P("// Code generated from module %q. DO NOT EDIT.", mod.Name)
	w.P("")
	w.P("package %s", cfg.PackageName)
	w.P("")
	w.P("import (")
	w.P("\t\"fmt\"")
	w.P("")
	w.P("\t\"github.com/kubkon/witxhost/guestmem\"")
	w.P(")")
	w.P("")

	for _, d := range mod.Types {
		var err error
		switch v := d.(type) {
		case *witx.Alias:
			err = tbl.emitAlias(w, v)
		case *witx.Enum:
			err = tbl.emitEnum(w, v, cfg)
		case *witx.Flags:
			err = tbl.emitFlags(w, v)
		case *witx.TaggedInt:
			err = tbl.emitTaggedInt(w, v)
		case *witx.Handle:
			err = tbl.emitHandle(w, v)
		case *witx.Record:
			err = tbl.emitRecord(w, v, cfg)
		case *witx.Union:
			err = tbl.emitUnion(w, v, cfg)
		case *witx.BuiltinType:
			// Builtins have a fixed, package-level codec in guestmem;
			// nothing to emit for a bare reference to one.
		default:
			err = fmt.Errorf("generate: unsupported top-level definition %T", d)
		}
		if err != nil {
			return nil, fmt.Errorf("emitting %s: %w", d, err)
		}
		w.P("")
	}

	return gofmtSource(w.buf.Bytes())
}

func reprGoType(r witx.Repr) string {
	switch r {
	case witx.Repr8:
		return "uint8"
	case witx.Repr16:
		return "uint16"
	case witx.Repr32:
		return "uint32"
	default:
		return "uint64"
	}
}

func (t *typeTable) emitAlias(w *writer, a *witx.Alias) error {
	target, err := t.goTypeOf(a.To)
	if err != nil {
		return err
	}
	w.P("type %s = %s", UpperCamel(a.Name), target)
	return nil
}

func (t *typeTable) emitEnum(w *writer, e *witx.Enum, cfg Config) error {
	name := UpperCamel(e.Name)
	lname := LowerCamel(name)
	goRepr := reprGoType(e.Repr)
	isErrno := e.Name == cfg.ErrnoType

	w.P("// %s is a %d-variant enum backed by %s.", name, len(e.Variants), goRepr)
	w.P("type %s %s", name, goRepr)
	w.P("")
	w.P("const (")
	for i, v := range e.Variants {
		variant := UpperCamel(v)
		if isErrno {
			variant = ErrnoVariant(v)
		}
		if i == 0 {
			w.P("\t%s%s %s = iota", name, variant, name)
		} else {
			w.P("\t%s%s", name, variant)
		}
	}
	w.P(")")
	w.P("")
	w.P("func (v %s) String() string {", name)
	w.P("\tswitch v {")
	for _, v := range e.Variants {
		variant := UpperCamel(v)
		if isErrno {
			variant = ErrnoVariant(v)
		}
		w.P("\tcase %s%s:", name, variant)
		w.P("\t\treturn %q", v)
	}
	w.P("\tdefault:")
	w.P("\t\treturn fmt.Sprintf(\"%s(%%d)\", v)", name)
	w.P("\t}")
	w.P("}")
	w.P("")
	w.P("type %sCodecT struct{}", lname)
	w.P("")
	w.P("var %sCodec = %sCodecT{}", name, lname)
	w.P("")
	w.P("func (%sCodecT) GuestSize() uint32 { return %d }", lname, e.Repr.BitWidth()/8)
	w.P("func (%sCodecT) GuestAlign() uintptr { return %d }", lname, e.Repr.BitWidth()/8)
	w.P("")
	reprCodec, err := t.builtinCodecExpr(reprBuiltin(e.Repr))
	if err != nil {
		return err
	}
	w.P("func (c %sCodecT) ReadGuest(m guestmem.Memory, offset uint32) (%s, error) {", lname, name)
	w.P("\traw, err := %s.ReadGuest(m, offset)", reprCodec)
	w.P("\tif err != nil {")
	w.P("\t\treturn 0, err")
	w.P("\t}")
	w.P("\tif err := guestmem.ValidateEnumOrdinal(uint64(raw), %d, %q); err != nil {", len(e.Variants), name)
	w.P("\t\treturn 0, err")
	w.P("\t}")
	w.P("\treturn %s(raw), nil", name)
	w.P("}")
	w.P("")
	w.P("func (c %sCodecT) WriteGuest(m guestmem.Memory, offset uint32, v %s) error {", lname, name)
	w.P("\treturn %s.WriteGuest(m, offset, %s(v))", reprCodec, goRepr)
	w.P("}")
	return nil
}

func (t *typeTable) emitFlags(w *writer, f *witx.Flags) error {
	name := UpperCamel(f.Name)
	lname := LowerCamel(name)
	goRepr := reprGoType(f.Repr)
	if len(f.Members) > 64 {
		return fmt.Errorf("generate: flags type %s declares %d members, overflowing the 64-bit limit", f.Name, len(f.Members))
	}

	w.P("// %s is a %d-bit flag set backed by %s.", name, len(f.Members), goRepr)
	w.P("type %s %s", name, goRepr)
	w.P("")
	w.P("const (")
	var allMask uint64
	for i, m := range f.Members {
		w.P("\t%s %s = 1 << %d", ShoutySnake(m), name, i)
		allMask |= 1 << uint(i)
	}
	w.P("\t%sEmptyFlags %s = 0", name, name)
	w.P("\t%sAllFlags %s = %#x", name, name, allMask)
	w.P(")")
	w.P("")
	w.P("func (f %s) And(o %s) %s { return f & o }", name, name, name)
	w.P("func (f %s) Or(o %s) %s  { return f | o }", name, name, name)
	w.P("func (f %s) Xor(o %s) %s { return f ^ o }", name, name, name)
	w.P("func (f %s) Not() %s     { return ^f & %sAllFlags }", name, name, name)
	w.P("")
	w.P("func (f *%s) AndAssign(o %s) { *f = f.And(o) }", name, name)
	w.P("func (f *%s) OrAssign(o %s)  { *f = f.Or(o) }", name, name)
	w.P("func (f *%s) XorAssign(o %s) { *f = f.Xor(o) }", name, name)
	w.P("")
	// Contains treats an empty `other` as always contained, matching the
	// bitwise identity used to decide it rather than special-casing zero.
	w.P("func (f %s) Contains(other %s) bool {", name, name)
	w.P("\treturn (^f & other) == %sEmptyFlags", name)
	w.P("}")
	w.P("")
	w.P("func (f %s) String() string {", name)
	w.P("\treturn fmt.Sprintf(\"%s(0b%%b)\", uint64(f))", name)
	w.P("}")
	w.P("")
	w.P("type %sCodecT struct{}", lname)
	w.P("")
	w.P("var %sCodec = %sCodecT{}", name, lname)
	w.P("")
	w.P("func (%sCodecT) GuestSize() uint32 { return %d }", lname, f.Repr.BitWidth()/8)
	w.P("func (%sCodecT) GuestAlign() uintptr { return %d }", lname, f.Repr.BitWidth()/8)
	w.P("")
	reprCodec, err := t.builtinCodecExpr(reprBuiltin(f.Repr))
	if err != nil {
		return err
	}
	w.P("func (c %sCodecT) ReadGuest(m guestmem.Memory, offset uint32) (%s, error) {", lname, name)
	w.P("\traw, err := %s.ReadGuest(m, offset)", reprCodec)
	w.P("\tif err != nil {")
	w.P("\t\treturn 0, err")
	w.P("\t}")
	w.P("\tif err := guestmem.ValidateFlagMask(uint64(raw), %#x, %q); err != nil {", allMask, name)
	w.P("\t\treturn 0, err")
	w.P("\t}")
	w.P("\treturn %s(raw), nil", name)
	w.P("}")
	w.P("")
	w.P("func (c %sCodecT) WriteGuest(m guestmem.Memory, offset uint32, v %s) error {", lname, name)
	w.P("\treturn %s.WriteGuest(m, offset, %s(v))", reprCodec, goRepr)
	w.P("}")
	return nil
}

func (t *typeTable) emitTaggedInt(w *writer, ti *witx.TaggedInt) error {
	name := UpperCamel(ti.Name)
	lname := LowerCamel(name)
	goRepr := reprGoType(ti.Repr)

	w.P("// %s is an integer type backed by %s; every bit pattern is valid.", name, goRepr)
	w.P("type %s %s", name, goRepr)
	if len(ti.Consts) > 0 {
		w.P("")
		w.P("const (")
		for _, c := range ti.Consts {
			w.P("\t%s%s %s = %d", name, UpperCamel(c.Name), name, c.Value)
		}
		w.P(")")
	}
	w.P("")
	w.P("type %sCodecT struct{}", lname)
	w.P("")
	w.P("var %sCodec = %sCodecT{}", name, lname)
	w.P("")
	w.P("func (%sCodecT) GuestSize() uint32 { return %d }", lname, ti.Repr.BitWidth()/8)
	w.P("func (%sCodecT) GuestAlign() uintptr { return %d }", lname, ti.Repr.BitWidth()/8)
	w.P("func (%sCodecT) ValidateTransparent(m guestmem.Memory, offset uint32) error { return nil }", lname)
	w.P("")
	reprCodec, err := t.builtinCodecExpr(reprBuiltin(ti.Repr))
	if err != nil {
		return err
	}
	w.P("func (c %sCodecT) ReadGuest(m guestmem.Memory, offset uint32) (%s, error) {", lname, name)
	w.P("\traw, err := %s.ReadGuest(m, offset)", reprCodec)
	w.P("\treturn %s(raw), err", name)
	w.P("}")
	w.P("")
	w.P("func (c %sCodecT) WriteGuest(m guestmem.Memory, offset uint32, v %s) error {", lname, name)
	w.P("\treturn %s.WriteGuest(m, offset, %s(v))", reprCodec, goRepr)
	w.P("}")
	return nil
}

func (t *typeTable) emitHandle(w *writer, h *witx.Handle) error {
	name := UpperCamel(h.Name)
	lname := LowerCamel(name)

	w.P("// %s is an opaque 32-bit handle with no interior structure.", name)
	w.P("type %s uint32", name)
	w.P("")
	w.P("func %sFromUint32(v uint32) %s { return %s(v) }", name, name, name)
	w.P("func (h %s) Uint32() uint32 { return uint32(h) }", name)
	w.P("func (h %s) Int32() int32   { return int32(h) }", name)
	w.P("")
	w.P("type %sCodecT struct{}", lname)
	w.P("")
	w.P("var %sCodec = %sCodecT{}", name, lname)
	w.P("")
	w.P("func (%sCodecT) GuestSize() uint32 { return 4 }", lname)
	w.P("func (%sCodecT) GuestAlign() uintptr { return 4 }", lname)
	w.P("func (%sCodecT) ValidateTransparent(m guestmem.Memory, offset uint32) error { return nil }", lname)
	w.P("")
	w.P("func (c %sCodecT) ReadGuest(m guestmem.Memory, offset uint32) (%s, error) {", lname, name)
	w.P("\traw, err := guestmem.U32.ReadGuest(m, offset)")
	w.P("\treturn %s(raw), err", name)
	w.P("}")
	w.P("")
	w.P("func (c %sCodecT) WriteGuest(m guestmem.Memory, offset uint32, v %s) error {", lname, name)
	w.P("\treturn guestmem.U32.WriteGuest(m, offset, uint32(v))")
	w.P("}")
	return nil
}

func (t *typeTable) emitRecord(w *writer, r *witx.Record, cfg Config) error {
	name := UpperCamel(r.Name)
	lname := LowerCamel(name)
	info, err := t.infoOf(r)
	if err != nil {
		return err
	}
	offsets, err := t.fieldOffsets(r)
	if err != nil {
		return err
	}

	w.P("// %s is a record with C-style sequential layout.", name)
	w.P("type %s struct {", name)
	for _, f := range r.Fields {
		ft, err := t.goTypeOf(f.Type)
		if err != nil {
			return err
		}
		w.P("\t%s %s", UpperCamel(f.Name), ft)
	}
	w.P("}")
	w.P("")
	if info.CopyOnly {
		w.P("// %s is copy-only: it contains a union, so no debug", name)
		w.P("// formatting is generated for it.")
	} else {
		w.P("func (v %s) String() string {", name)
		format := make([]string, 0, len(r.Fields))
		args := make([]string, 0, len(r.Fields))
		for _, f := range r.Fields {
			fname := UpperCamel(f.Name)
			format = append(format, fname+":%v")
			args = append(args, "v."+fname)
		}
		argList := ""
		for _, a := range args {
			argList += ", " + a
		}
		lit := name + "{"
		for i, f := range format {
			if i > 0 {
				lit += " "
			}
			lit += f
		}
		lit += "}"
		w.P("\treturn fmt.Sprintf(%q%s)", lit, argList)
		w.P("}")
	}
	w.P("")
	w.P("type %sCodecT struct{}", lname)
	w.P("")
	w.P("var %sCodec = %sCodecT{}", name, lname)
	w.P("")
	w.P("func (%sCodecT) GuestSize() uint32 { return %d }", lname, info.Size)
	w.P("func (%sCodecT) GuestAlign() uintptr { return %d }", lname, info.Align)
	w.P("")
	w.P("func (c %sCodecT) ReadGuest(m guestmem.Memory, offset uint32) (%s, error) {", lname, name)
	w.P("\tvar v %s", name)
	w.P("\tvar err error")
	for i, f := range r.Fields {
		codec, err := t.codecExprOf(cfg, f.Type)
		if err != nil {
			return err
		}
		w.P("\tv.%s, err = guestmem.ReadField(%q, %q, m, offset+%d, %s)", UpperCamel(f.Name), name, f.Name, offsets[i], codec)
		w.P("\tif err != nil {")
		w.P("\t\treturn v, err")
		w.P("\t}")
	}
	w.P("\treturn v, nil")
	w.P("}")
	w.P("")
	w.P("func (c %sCodecT) WriteGuest(m guestmem.Memory, offset uint32, v %s) error {", lname, name)
	for i, f := range r.Fields {
		codec, err := t.codecExprOf(cfg, f.Type)
		if err != nil {
			return err
		}
		w.P("\tif err := guestmem.WriteField(%q, %q, m, offset+%d, %s, v.%s); err != nil {", name, f.Name, offsets[i], codec, UpperCamel(f.Name))
		w.P("\t\treturn err")
		w.P("\t}")
	}
	w.P("\treturn nil")
	w.P("}")
	return nil
}

func (t *typeTable) emitUnion(w *writer, u *witx.Union, cfg Config) error {
	name := UpperCamel(u.Name)
	lname := LowerCamel(name)
	info, err := t.infoOf(u)
	if err != nil {
		return err
	}

	w.P("// %s is a discriminated union: %d arms sharing %d bytes of", name, len(u.Arms), info.Size)
	w.P("// overlapped storage. The tag lives in the enclosing record, not")
	w.P("// here; reading a %s does not itself validate any arm — only", name)
	w.P("// reading the specific arm the tag selected does.")
	w.P("type %s struct {", name)
	w.P("\traw [%d]byte", info.Size)
	w.P("}")
	w.P("")
	for _, a := range u.Arms {
		armType, err := t.goTypeOf(a.Type)
		if err != nil {
			return err
		}
		armCodec, err := t.codecExprOf(cfg, a.Type)
		if err != nil {
			return err
		}
		armName := UpperCamel(a.Name)
		w.P("func (u %s) Arm%s() (%s, error) {", name, armName, armType)
		w.P("\tmem := guestmem.NewSliceMemory(u.raw[:])")
		w.P("\treturn %s.ReadGuest(mem, 0)", armCodec)
		w.P("}")
		w.P("")
		w.P("func (u *%s) SetArm%s(v %s) error {", name, armName, armType)
		w.P("\tmem := guestmem.NewSliceMemory(u.raw[:])")
		w.P("\treturn %s.WriteGuest(mem, 0, v)", armCodec)
		w.P("}")
		w.P("")
	}
	w.P("type %sCodecT struct{}", lname)
	w.P("")
	w.P("var %sCodec = %sCodecT{}", name, lname)
	w.P("")
	w.P("func (%sCodecT) GuestSize() uint32 { return %d }", lname, info.Size)
	w.P("func (%sCodecT) GuestAlign() uintptr { return %d }", lname, info.Align)
	w.P("")
	w.P("func (c %sCodecT) ReadGuest(m guestmem.Memory, offset uint32) (%s, error) {", lname, name)
	w.P("\tvar v %s", name)
	w.P("\tfor i := uint32(0); i < %d; i++ {", info.Size)
	w.P("\t\tb, err := guestmem.U8.ReadGuest(m, offset+i)")
	w.P("\t\tif err != nil {")
	w.P("\t\t\treturn v, err")
	w.P("\t\t}")
	w.P("\t\tv.raw[i] = b")
	w.P("\t}")
	w.P("\treturn v, nil")
	w.P("}")
	w.P("")
	w.P("func (c %sCodecT) WriteGuest(m guestmem.Memory, offset uint32, v %s) error {", lname, name)
	w.P("\tfor i := uint32(0); i < %d; i++ {", info.Size)
	w.P("\t\tif err := guestmem.U8.WriteGuest(m, offset+i, v.raw[i]); err != nil {")
	w.P("\t\t\treturn err")
	w.P("\t\t}")
	w.P("\t}")
	w.P("\treturn nil")
	w.P("}")
	return nil
}
