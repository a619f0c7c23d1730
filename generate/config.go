// Package generate implements the schema→code emitter: it walks a
// *witx.Module and produces host-side Go source — data types, guest-
// type trait implementations, a handler trait, and ABI trampolines —
// the way fuse/opcode.go and fuse/api.go hand-wrote the equivalent
// bridge for the FUSE wire protocol, except mechanically, from a
// schema, for an arbitrary set of imported functions.
package generate

// Target selects which ABI this module's pointer/size-bearing types are
// emitted for. The CLI emits Wasm32 unless given -host-native;
// HostNative follows the identical rules with platform-native widths
// and exists so the emitter itself isn't hard-coded to one pointer
// width.
type Target int

const (
	TargetWasm32 Target = iota
	TargetHostNative
)

// PointerWidth returns the guest pointer/size width, in bytes, for t.
func (t Target) PointerWidth() int {
	switch t {
	case TargetWasm32:
		return 4
	case TargetHostNative:
		return 8
	default:
		return 4
	}
}

// Config configures one generator run, following the teacher's own
// MountOptions-style "plain struct, defaults filled in by the code
// that consumes it" convention (fuse/api.go's MountOptions,
// fuse/server.go's NewServer) rather than a config file or
// flag-parsed globals. EmitTypes and EmitFuncs apply the defaults.
type Config struct {
	// Target is the ABI this run emits pointer/size-bearing types for.
	Target Target

	// PackageName is the emitted file's package clause. Defaults to
	// the schema Module's own Name if left empty.
	PackageName string

	// ErrnoType names the schema Enum treated as the module's error-code
	// type: its variants are emitted E-prefixed and lowerCamelCased
	// (ErrnoVariant) instead of UpperCamelCased. It does not fix the
	// trampolines' return type, which is the type parameter E chosen by
	// the caller. If it names no Enum of the Module, no enum gets the
	// error-code naming.
	ErrnoType string
}

func (c Config) withDefaults(moduleName string) Config {
	if c.PackageName == "" {
		c.PackageName = moduleName
	}
	return c
}
