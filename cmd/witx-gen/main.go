// Command witx-gen reads a schema and writes the generated host-side
// Go types and ABI trampolines for it, the way any of the teacher's
// own small `main` packages (example/hello/main.go's flag-parsed,
// log.Fatal-on-error style) wires a library into a standalone tool.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/sys/unix"

	"github.com/kubkon/witxhost/generate"
	"github.com/kubkon/witxhost/witx"
)

func main() {
	schemaPath := flag.String("schema", "", "path to the .witx interface description")
	typesOut := flag.String("types-out", "", "output path for the generated types file")
	funcsOut := flag.String("funcs-out", "", "output path for the generated handler/trampoline file")
	pkgName := flag.String("pkg", "", "package name for generated output (defaults to the module name)")
	errnoType := flag.String("errno", "", "name of the schema enum whose variants get error-code (E-prefixed) naming")
	hostNative := flag.Bool("host-native", false, "emit the host-native ABI target instead of wasm32")
	flag.Parse()

	if *schemaPath == "" || *typesOut == "" || *funcsOut == "" {
		log.Fatal("usage: witx-gen -schema FILE -types-out FILE -funcs-out FILE [-pkg NAME] [-errno TYPE] [-host-native]")
	}

	if err := run(*schemaPath, *typesOut, *funcsOut, *pkgName, *errnoType, *hostNative); err != nil {
		log.Fatalf("witx-gen: %v", err)
	}
}

func run(schemaPath, typesOut, funcsOut, pkgName, errnoType string, hostNative bool) error {
	f, err := os.Open(schemaPath)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	defer f.Close()

	// The buffered reader's size is the host's page size, the same
	// size the teacher's own buffer pool (fuse/bufferpool.go) uses for
	// its I/O buffers.
	src, err := io.ReadAll(bufio.NewReaderSize(f, unix.Getpagesize()))
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}

	mod, err := witx.ParseText(string(src))
	if err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}
	if err := mod.Resolve(); err != nil {
		return fmt.Errorf("resolving schema: %w", err)
	}

	target := generate.TargetWasm32
	if hostNative {
		target = generate.TargetHostNative
	}
	if err := generate.ValidateModule(mod, target); err != nil {
		return fmt.Errorf("validating schema: %w", err)
	}

	cfg := generate.Config{Target: target, PackageName: pkgName, ErrnoType: errnoType}

	types, err := generate.EmitTypes(mod, cfg)
	if err != nil {
		return fmt.Errorf("emitting types: %w", err)
	}
	if err := os.WriteFile(typesOut, types, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", typesOut, err)
	}

	funcs, err := generate.EmitFuncs(mod, cfg)
	if err != nil {
		return fmt.Errorf("emitting handler/trampolines: %w", err)
	}
	if err := os.WriteFile(funcsOut, funcs, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", funcsOut, err)
	}
	return nil
}
