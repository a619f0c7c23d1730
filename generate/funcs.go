package generate

import (
	"fmt"

	"github.com/kubkon/witxhost/witx"
)

// emitHandler emits the Handler interface a host implementation of
// mod's imported functions must satisfy, one method per witx.Function,
// with the schema's own typed parameters and results — the generated
// analogue of fuse/api.go's RawFileSystem interface, except produced
// from a schema instead of hand-written against the FUSE wire protocol.
func emitHandler(w *writer, tbl *typeTable, mod *witx.Module) error {
	w.P("// Handler is implemented by the host to service %s's imported", mod.Name)
	w.P("// functions. Every method receives already-validated, typed")
	w.P("// arguments (pointers, arrays and strings are handles into guest")
	w.P("// memory, not yet read) and returns its results plus an error; the")
	w.P("// calling trampoline maps a non-nil error to the module's error-code")
	w.P("// type and writes successful results to the caller's out-pointers.")
	w.P("type Handler interface {")
	for _, f := range mod.Funcs {
		sig, err := tbl.handlerMethodSig(f)
		if err != nil {
			return fmt.Errorf("function %s: %w", f.Name, err)
		}
		w.P("\t%s", sig)
	}
	w.P("}")
	return nil
}

// handlerMethodSig renders "MethodName(argType, ...) (resultType, ..., error)".
func (t *typeTable) handlerMethodSig(f witx.Function) (string, error) {
	var params []string
	for _, p := range f.Params {
		gt, err := t.goTypeOf(p.Type)
		if err != nil {
			return "", err
		}
		params = append(params, LowerCamel(p.Name)+" "+gt)
	}
	var results []string
	for _, r := range f.Results {
		gt, err := t.goTypeOf(r.Type)
		if err != nil {
			return "", err
		}
		results = append(results, gt)
	}
	results = append(results, "error")

	paramList := ""
	for i, p := range params {
		if i > 0 {
			paramList += ", "
		}
		paramList += p
	}
	resultList := ""
	for i, r := range results {
		if i > 0 {
			resultList += ", "
		}
		resultList += r
	}
	return fmt.Sprintf("%s(%s) (%s)", UpperCamel(f.Name), paramList, resultList), nil
}
