package generate

import (
	"fmt"

	"github.com/kubkon/witxhost/witx"
)

// EmitFuncs emits the Handler interface (funcs.go's concern) and, for
// every witx.Function in mod, a generic ABI-level trampoline: decode
// the raw wasm32 scalars into typed guest values, validate enum/flag
// arguments passed by raw value, call the matching Handler method, and
// either map a returned error to the caller's error-code type or write
// the results to their out-pointers and return success.
//
// Mirrors fuse/opcode.go's do_Xxx functions: decode request, call the
// filesystem method, encode response — except here "decode" also means
// "validate", since trampolines sit directly on the safety boundary.
func EmitFuncs(mod *witx.Module, cfg Config) ([]byte, error) {
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
	w.P("\t\"github.com/kubkon/witxhost/guestmem\"")
	w.P(")")
	w.P("")

	if err := emitHandler(w, tbl, mod); err != nil {
		return nil, err
	}
	w.P("")

	for _, f := range mod.Funcs {
		if err := tbl.emitTrampoline(w, f, cfg); err != nil {
			return nil, fmt.Errorf("function %s: %w", f.Name, err)
		}
		w.P("")
	}

	return gofmtSource(w.buf.Bytes())
}

func (t *typeTable) emitTrampoline(w *writer, f witx.Function, cfg Config) error {
	name := UpperCamel(f.Name)

	type decodedParam struct {
		argNames []string
		decode   []string
		varName  string
	}

	var sigParams []string
	var decodes []decodedParam
	var callArgs []string

	for i, p := range f.Params {
		slots, err := t.abiSlotsOf(p.Type)
		if err != nil {
			return fmt.Errorf("param %s: %w", p.Name, err)
		}
		var argNames []string
		for s, slot := range slots {
			argName := fmt.Sprintf("arg%d", i)
			if len(slots) > 1 {
				argName = fmt.Sprintf("arg%d_%d", i, s)
			}
			argNames = append(argNames, argName)
			sigParams = append(sigParams, argName+" "+slot.GoType)
		}

		varName := fmt.Sprintf("v%d", i)
		decode, err := t.decodeArg(varName, argNames, p.Type, name)
		if err != nil {
			return fmt.Errorf("param %s: %w", p.Name, err)
		}
		decodes = append(decodes, decodedParam{argNames: argNames, decode: decode, varName: varName})
		callArgs = append(callArgs, varName)
	}

	var outNames []string
	var encodes [][]string
	for i, r := range f.Results {
		outName := fmt.Sprintf("out%d", i)
		outNames = append(outNames, outName)
		sigParams = append(sigParams, outName+" uint32")
		codec, err := t.codecExprOf(cfg, r.Type)
		if err != nil {
			return fmt.Errorf("result %d: %w", i, err)
		}
		resVar := fmt.Sprintf("r%d", i)
		encodes = append(encodes, []string{
			fmt.Sprintf("if err := guestmem.NewPointer(mem, %s, %s).Write(%s); err != nil {", outName, codec, resVar),
			"\treturn em.FromError(err, " + fmt.Sprintf("%q", f.Name) + ")",
			"}",
		})
	}

	paramList := ""
	for i, p := range sigParams {
		if i > 0 {
			paramList += ", "
		}
		paramList += p
	}

	w.P("// Trampoline%s is the ABI-level entry point for %q.", name, f.Name)
	w.P("func Trampoline%s[E guestmem.Errno](mem guestmem.Memory, em guestmem.ErrnoMapper[E], h Handler, %s) E {", name, paramList)
	for _, d := range decodes {
		for _, line := range d.decode {
			w.P("\t%s", line)
		}
	}

	var resVars []string
	for i := range f.Results {
		resVars = append(resVars, fmt.Sprintf("r%d", i))
	}
	resVars = append(resVars, "err")
	callList := ""
	for i, a := range callArgs {
		if i > 0 {
			callList += ", "
		}
		callList += a
	}
	resList := ""
	for i, v := range resVars {
		if i > 0 {
			resList += ", "
		}
		resList += v
	}
	w.P("\t%s := h.%s(%s)", resList, name, callList)
	w.P("\tif err != nil {")
	w.P("\t\treturn em.FromError(err, %q)", f.Name)
	w.P("\t}")
	for _, enc := range encodes {
		for _, line := range enc {
			w.P("\t%s", line)
		}
	}
	w.P("\treturn em.Success()")
	w.P("}")
	return nil
}

// decodeArg emits the statements that turn the raw ABI scalar(s) named
// in argNames into the typed value varName, matching the ABI mapping
// table: enums and flags validate directly against the raw scalar
// (they never touch guest memory as an argument — the caller passed
// the value, not a pointer to it), pointers/arrays/strings become
// unread handles, and a record or union arrives as an implicit const
// pointer that the host must actually read.
func (t *typeTable) decodeArg(varName string, argNames []string, d witx.Definition, funcName string) ([]string, error) {
	goType, err := t.goTypeOf(d)
	if err != nil {
		return nil, err
	}

	switch {
	case isPointerLike(d):
		elem := resolveAlias(d)
		var elemType witx.Definition
		switch v := elem.(type) {
		case *witx.PointerType:
			elemType = v.Elem
		case *witx.ConstPointerType:
			elemType = v.Elem
		}
		elemCodec, err := t.codecExprOf(Config{Target: t.target}, elemType)
		if err != nil {
			return nil, err
		}
		return []string{
			fmt.Sprintf("%s := guestmem.NewPointer(mem, uint32(%s), %s)", varName, argNames[0], elemCodec),
		}, nil
	case isArray(d):
		arr := resolveAlias(d).(*witx.ArrayType)
		elemCodec, err := t.codecExprOf(Config{Target: t.target}, arr.Elem)
		if err != nil {
			return nil, err
		}
		return []string{
			fmt.Sprintf("%s := guestmem.NewArrayPointer(mem, uint32(%s), uint32(%s), %s)", varName, argNames[0], argNames[1], elemCodec),
		}, nil
	case isString(d):
		return []string{
			fmt.Sprintf("%s := guestmem.NewStringPointer(mem, uint32(%s), uint32(%s))", varName, argNames[0], argNames[1]),
		}, nil
	case isRecordOrUnion(d):
		codec, err := t.codecExprOf(Config{Target: t.target}, d)
		if err != nil {
			return nil, err
		}
		return []string{
			fmt.Sprintf("%s, err := guestmem.NewPointer(mem, uint32(%s), %s).Read()", varName, argNames[0], codec),
			"if err != nil {",
			fmt.Sprintf("\treturn em.FromError(err, %q)", funcName),
			"}",
		}, nil
	}

	if e, ok := isEnum(d); ok {
		widen, cast := reprArgExprs(argNames[0], e.Repr == witx.Repr64, goType)
		return []string{
			fmt.Sprintf("if err := guestmem.ValidateEnumOrdinal(%s, %d, %q); err != nil {", widen, len(e.Variants), goType),
			fmt.Sprintf("\treturn em.FromError(err, %q)", funcName),
			"}",
			fmt.Sprintf("%s := %s", varName, cast),
		}, nil
	}
	if fl, ok := isFlags(d); ok {
		var mask uint64
		for i := range fl.Members {
			mask |= 1 << uint(i)
		}
		widen, cast := reprArgExprs(argNames[0], fl.Repr == witx.Repr64, goType)
		return []string{
			fmt.Sprintf("if err := guestmem.ValidateFlagMask(%s, %#x, %q); err != nil {", widen, mask, goType),
			fmt.Sprintf("\treturn em.FromError(err, %q)", funcName),
			"}",
			fmt.Sprintf("%s := %s", varName, cast),
		}, nil
	}

	// Plain scalar, size, tagged int or handle: every bit pattern is
	// legal, so decoding is a direct conversion.
	return []string{
		fmt.Sprintf("%s := %s(%s)", varName, goType, argNames[0]),
	}, nil
}

// reprArgExprs returns the expression that widens an ABI argument to a
// uint64 for validation, and the expression that casts it to goType,
// matching the ABI slot abiSlotsOf actually emits: an i64 Go parameter
// (argName already int64) when repr64, an i32 Go parameter (argName
// int32) otherwise. Routing a repr-64 argument through uint32 first
// would silently drop its high bits before validation ever sees them.
func reprArgExprs(argName string, repr64 bool, goType string) (widen, cast string) {
	if repr64 {
		return fmt.Sprintf("uint64(%s)", argName), fmt.Sprintf("%s(%s)", goType, argName)
	}
	return fmt.Sprintf("uint64(uint32(%s))", argName), fmt.Sprintf("%s(uint32(%s))", goType, argName)
}
