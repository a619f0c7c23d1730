package generate

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"sort"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/kubkon/witxhost/witx"
)

func loadDemoModule(t *testing.T) *witx.Module {
	t.Helper()
	src, err := os.ReadFile("../examples/demo/demo.witx")
	if err != nil {
		t.Fatalf("reading demo.witx: %v", err)
	}
	mod, err := witx.ParseText(string(src))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if err := mod.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return mod
}

func demoConfig() Config {
	return Config{Target: TargetWasm32, PackageName: "democode", ErrnoType: "demo_errno"}
}

// declSummary is a gofmt-insensitive fingerprint of a Go source file's
// top-level declarations. Comparing this instead of raw source bytes
// means the comparison survives harmless formatting differences
// between two independently-produced sources (e.g. go/format's
// column-alignment of adjacent one-line funcs) while still catching
// any real drift in the names and shapes EmitTypes/EmitFuncs promise
// to emit.
type declSummary struct {
	Types  []string
	Consts []string
	Funcs  []string
}

func summarize(t *testing.T, src []byte) declSummary {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, 0)
	if err != nil {
		t.Fatalf("parsing generated source: %v\n%s", err, src)
	}
	var s declSummary
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch sp := spec.(type) {
				case *ast.TypeSpec:
					s.Types = append(s.Types, sp.Name.Name)
				case *ast.ValueSpec:
					if d.Tok == token.CONST {
						for _, n := range sp.Names {
							s.Consts = append(s.Consts, n.Name)
						}
					}
				}
			}
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil && len(d.Recv.List) > 0 {
				name = recvTypeName(d.Recv.List[0].Type) + "." + name
			}
			s.Funcs = append(s.Funcs, name)
		}
	}
	sort.Strings(s.Types)
	sort.Strings(s.Consts)
	sort.Strings(s.Funcs)
	return s
}

func recvTypeName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return recvTypeName(e.X)
	case *ast.Ident:
		return e.Name
	default:
		return ""
	}
}

// TestEmitTypesMatchesCheckedInMirror runs the real type emitter over
// demo.witx and compares its declarations against examples/demo/gen's
// hand-maintained mirror, the golden file this repo keeps precisely so
// the emitter has something to be checked against.
func TestEmitTypesMatchesCheckedInMirror(t *testing.T) {
	got, err := EmitTypes(loadDemoModule(t), demoConfig())
	if err != nil {
		t.Fatalf("EmitTypes: %v", err)
	}
	want, err := os.ReadFile("../examples/demo/gen/types.go")
	if err != nil {
		t.Fatalf("reading checked-in mirror: %v", err)
	}
	if diff := pretty.Compare(summarize(t, want), summarize(t, got)); diff != "" {
		t.Errorf("EmitTypes declarations differ from examples/demo/gen/types.go:\n%s", diff)
	}
}

func TestEmitFuncsMatchesCheckedInMirror(t *testing.T) {
	got, err := EmitFuncs(loadDemoModule(t), demoConfig())
	if err != nil {
		t.Fatalf("EmitFuncs: %v", err)
	}
	want, err := os.ReadFile("../examples/demo/gen/funcs.go")
	if err != nil {
		t.Fatalf("reading checked-in mirror: %v", err)
	}
	if diff := pretty.Compare(summarize(t, want), summarize(t, got)); diff != "" {
		t.Errorf("EmitFuncs declarations differ from examples/demo/gen/funcs.go:\n%s", diff)
	}
}

func TestValidateModuleAcceptsDemo(t *testing.T) {
	if err := ValidateModule(loadDemoModule(t), TargetWasm32); err != nil {
		t.Fatalf("ValidateModule: %v", err)
	}
}

func TestValidateModuleRejectsDuplicateParamNames(t *testing.T) {
	mod, err := witx.ParseText("module bad\n\nfunc broken(a: s32, a: s32) -> (r: s32)\n")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if err := mod.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := ValidateModule(mod, TargetWasm32); err == nil {
		t.Fatal("expected a duplicate parameter name to be rejected")
	}
}

func TestValidateModuleRejectsDuplicateResultNames(t *testing.T) {
	mod, err := witx.ParseText("module bad\n\nfunc broken(a: s32) -> (r: s32, r: s32)\n")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if err := mod.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := ValidateModule(mod, TargetWasm32); err == nil {
		t.Fatal("expected a duplicate result name to be rejected")
	}
}
