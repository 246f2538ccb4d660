// Package format wires the bundled file formats into a registry.
package format

import (
	"github.com/Borislavv/go-ash-msdata/internal/format/mgf"
	"github.com/Borislavv/go-ash-msdata/internal/format/psmtsv"
	"github.com/Borislavv/go-ash-msdata/internal/source"
)

// Defaults returns every bundled format.
func Defaults() []source.Format {
	return []source.Format{mgf.Format(), psmtsv.Format()}
}

// NewRegistry returns a registry with the bundled formats plus extra ones.
// Extra formats registered under an existing name or extension replace the bundled one.
func NewRegistry(extra ...source.Format) *source.Registry {
	return source.NewRegistry(append(Defaults(), extra...)...)
}
