package generate

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kubkon/witxhost/witx"
)

// ValidateModule checks that every declared function's signature can
// actually be emitted: no duplicate parameter or result names, every
// parameter type has a well-defined ABI lowering and Go type under
// target, and every result type has a Go type (results travel through
// out-pointers, not ABI slots). Functions are checked concurrently with
// errgroup, mirroring the fan-out-then-join shape a module this size
// doesn't strictly need but a schema with hundreds of imports would.
func ValidateModule(mod *witx.Module, target Target) error {
	tbl := newTypeTable(mod, target)
	// Fill the cache for every declared type before the fan-out, so
	// concurrent lookups of a shared type only ever read finished entries.
	for _, d := range mod.Types {
		if _, err := tbl.infoOf(d); err != nil {
			return err
		}
	}
	var g errgroup.Group
	for _, f := range mod.Funcs {
		f := f
		g.Go(func() error {
			return tbl.validateFunc(f)
		})
	}
	return g.Wait()
}

func (t *typeTable) validateFunc(f witx.Function) error {
	seen := map[string]bool{}
	for _, p := range f.Params {
		if seen[p.Name] {
			return fmt.Errorf("function %s: duplicate parameter name %q", f.Name, p.Name)
		}
		seen[p.Name] = true
		if _, err := t.abiSlotsOf(p.Type); err != nil {
			return fmt.Errorf("function %s: parameter %s: %w", f.Name, p.Name, err)
		}
		if _, err := t.goTypeOf(p.Type); err != nil {
			return fmt.Errorf("function %s: parameter %s: %w", f.Name, p.Name, err)
		}
	}
	seenResults := map[string]bool{}
	for _, r := range f.Results {
		if r.Name != "" {
			if seenResults[r.Name] {
				return fmt.Errorf("function %s: duplicate result name %q", f.Name, r.Name)
			}
			seenResults[r.Name] = true
		}
		if _, err := t.goTypeOf(r.Type); err != nil {
			return fmt.Errorf("function %s: result %s: %w", f.Name, r.Name, err)
		}
	}
	return nil
}
