package generate

import (
	"bytes"
	"fmt"
	"go/format"
)

// writer accumulates emitted Go source. Like fuse/print.go's debug
// formatters, it is a thin wrapper around a bytes.Buffer and
// fmt.Fprintf — no text/template, no go/ast construction.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) P(format string, args ...any) {
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
}

func (w *writer) Raw(s string) {
	w.buf.WriteString(s)
}

// gofmtSource runs the final emitted source through go/format, the way
// every generator in the ecosystem does, so the output reads like
// hand-written Go regardless of the emitter's own formatting.
func gofmtSource(src []byte) ([]byte, error) {
	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("generate: formatting emitted source: %w", err)
	}
	return out, nil
}
