// Package source declares the narrow contracts between the cached controller and the
// format-specific collaborators: a Reader yielding raw records, a Transformer turning them
// into the common object model and a Strategy performing the eager index pass.
package source

import (
	"context"
	"errors"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/model"
	"io"
)

// ErrNotFound is returned by a Reader for ids it does not hold. It is an expected outcome,
// cached as a negative result, never a failure.
var ErrNotFound = errors.New("record not found")

type RecordKind uint8

const (
	RecordSpectrum RecordKind = iota
	RecordChromatogram
	RecordProtein
)

func (k RecordKind) String() string {
	switch k {
	case RecordSpectrum:
		return "spectrum"
	case RecordChromatogram:
		return "chromatogram"
	case RecordProtein:
		return "protein"
	default:
		return "unknown"
	}
}

// Record is a raw, format-native record.
type Record any

// Reader is bound to one open physical file.
type Reader interface {
	// Path of the file the reader is bound to.
	Path() string
	// ReadByID returns ErrNotFound (possibly wrapped) when the file holds no such record.
	ReadByID(ctx context.Context, kind RecordKind, id string) (Record, error)
	// StreamAllIDs calls fn for every id of kind in file order; a non-nil error from fn stops the stream.
	StreamAllIDs(ctx context.Context, kind RecordKind, fn func(id string) error) error
	io.Closer
}

// Transformer converts raw records into common entities. Implementations are pure.
type Transformer interface {
	Spectrum(rec Record) (*model.Spectrum, error)
	Chromatogram(rec Record) (*model.Chromatogram, error)
	Protein(rec Record) (*model.Protein, error)
}

// Strategy performs the single eager pass populating index-shaped entries.
// It must leave the cache able to list ids and relationships without further I/O.
type Strategy interface {
	Populate(ctx context.Context, r Reader, c cache.Cacher) error
}

// Format bundles the per-format collaborators the controller is parameterized by.
type Format struct {
	Name        string
	Extensions  []string
	Open        func(ctx context.Context, path string) (Reader, error)
	Transformer Transformer
	Strategy    Strategy
	// PeakList marks formats that can back a sub-controller for cross-file spectra.
	PeakList bool
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
