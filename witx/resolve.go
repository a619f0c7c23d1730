package witx

import "fmt"

// Resolve replaces every namedRef placeholder produced while parsing
// (a reference to a type by name, possibly declared later in the same
// module) with the actual Definition it names. It must be called once
// the whole Module has been parsed, before the generator walks it.
func (m *Module) Resolve() error {
	r := &resolver{mod: m}
	for _, d := range m.Types {
		if err := r.resolveDef(d); err != nil {
			return err
		}
	}
	for i := range m.Funcs {
		for j := range m.Funcs[i].Params {
			resolved, err := r.resolve(m.Funcs[i].Params[j].Type)
			if err != nil {
				return err
			}
			m.Funcs[i].Params[j].Type = resolved
		}
		for j := range m.Funcs[i].Results {
			resolved, err := r.resolve(m.Funcs[i].Results[j].Type)
			if err != nil {
				return err
			}
			m.Funcs[i].Results[j].Type = resolved
		}
	}
	return nil
}

type resolver struct {
	mod *Module
}

func (r *resolver) resolve(d Definition) (Definition, error) {
	switch t := d.(type) {
	case *namedRef:
		found := r.mod.Lookup(t.name)
		if found == nil {
			return nil, fmt.Errorf("witx: undefined type %q", t.name)
		}
		return found, nil
	case *PointerType:
		elem, err := r.resolve(t.Elem)
		if err != nil {
			return nil, err
		}
		t.Elem = elem
		return t, nil
	case *ConstPointerType:
		elem, err := r.resolve(t.Elem)
		if err != nil {
			return nil, err
		}
		t.Elem = elem
		return t, nil
	case *ArrayType:
		elem, err := r.resolve(t.Elem)
		if err != nil {
			return nil, err
		}
		t.Elem = elem
		return t, nil
	default:
		return d, nil
	}
}

func (r *resolver) resolveDef(d Definition) error {
	switch t := d.(type) {
	case *Alias:
		resolved, err := r.resolve(t.To)
		if err != nil {
			return err
		}
		t.To = resolved
	case *Record:
		for i := range t.Fields {
			resolved, err := r.resolve(t.Fields[i].Type)
			if err != nil {
				return err
			}
			t.Fields[i].Type = resolved
		}
	case *Union:
		for i := range t.Arms {
			resolved, err := r.resolve(t.Arms[i].Type)
			if err != nil {
				return err
			}
			t.Arms[i].Type = resolved
		}
	}
	return nil
}
