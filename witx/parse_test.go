package witx

import (
	"os"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func loadDemoModule(t *testing.T) *Module {
	t.Helper()
	src, err := os.ReadFile("../examples/demo/demo.witx")
	if err != nil {
		t.Fatalf("reading demo.witx: %v", err)
	}
	mod, err := ParseText(string(src))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if err := mod.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return mod
}

func findFunc(t *testing.T, mod *Module, name string) Function {
	t.Helper()
	for _, f := range mod.Funcs {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no function named %q", name)
	return Function{}
}

func TestParseAndResolveDemoModule(t *testing.T) {
	mod := loadDemoModule(t)

	if mod.Name != "demo" {
		t.Fatalf("module name = %q, want demo", mod.Name)
	}

	gotFuncs := make([]string, len(mod.Funcs))
	for i, f := range mod.Funcs {
		gotFuncs[i] = f.Name
	}
	wantFuncs := []string{"sum_of_pair", "bat", "configure_car", "reduce_excuses", "hello_string"}
	if diff := pretty.Compare(wantFuncs, gotFuncs); diff != "" {
		t.Errorf("function names/order differ: %s", diff)
	}

	gotTypes := make([]string, len(mod.Types))
	for i, d := range mod.Types {
		gotTypes[i] = d.definitionName()
	}
	wantTypes := []string{"demo_errno", "pair", "car_flags", "excuse"}
	if diff := pretty.Compare(wantTypes, gotTypes); diff != "" {
		t.Errorf("type names/order differ: %s", diff)
	}
}

// TestResolveReplacesForwardReferences checks that every parameter type
// Resolve leaves behind is the real declaration, not the namedRef
// placeholder parseTypeRef uses for a name it hasn't seen declared yet.
func TestResolveReplacesForwardReferences(t *testing.T) {
	mod := loadDemoModule(t)

	sumOfPair := findFunc(t, mod, "sum_of_pair")
	ptr, ok := sumOfPair.Params[0].Type.(*ConstPointerType)
	if !ok {
		t.Fatalf("sum_of_pair's param type is %T, want *ConstPointerType", sumOfPair.Params[0].Type)
	}
	rec, ok := ptr.Elem.(*Record)
	if !ok {
		t.Fatalf("pointer element is %T, want *Record", ptr.Elem)
	}
	if rec.Name != "pair" {
		t.Fatalf("pointer element name = %q, want pair", rec.Name)
	}
	if len(rec.Fields) != 2 || rec.Fields[0].Name != "first" || rec.Fields[1].Name != "second" {
		t.Fatalf("pair fields = %+v, want [first second]", rec.Fields)
	}

	reduceExcuses := findFunc(t, mod, "reduce_excuses")
	arr, ok := reduceExcuses.Params[0].Type.(*ArrayType)
	if !ok {
		t.Fatalf("reduce_excuses's param type is %T, want *ArrayType", reduceExcuses.Params[0].Type)
	}
	if _, stillUnresolved := arr.Elem.(*namedRef); stillUnresolved {
		t.Fatal("array element was left as an unresolved namedRef")
	}
	if _, ok := arr.Elem.(*Enum); !ok {
		t.Fatalf("array element is %T, want *Enum", arr.Elem)
	}
}

func TestResolveRejectsUnknownTypeReference(t *testing.T) {
	mod, err := ParseText("module bad\n\nfunc f(a: nonexistent_type)\n")
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if err := mod.Resolve(); err == nil {
		t.Fatal("expected Resolve to reject a reference to an undeclared type")
	}
}

func TestParseTextRejectsMalformedModule(t *testing.T) {
	if _, err := ParseText("not a valid schema {{{"); err == nil {
		t.Fatal("expected ParseText to reject malformed input")
	}
}
