package cache

import (
	"fmt"
	"github.com/Borislavv/go-ash-msdata/model"
)

// Typed descriptors bind an entry kind to its value type, so the kind->shape contract is
// checked by the compiler at call sites and by arity assertions at package init.
var (
	SpectrumIDs     = NewSingle[[]string](KindSpectrumIDs)
	ChromatogramIDs = NewSingle[[]string](KindChromatogramIDs)
	ProteinIDs      = NewSingle[[]string](KindProteinIDs)
	ProteinGroupIDs = NewSingle[[]string](KindProteinGroupIDs)

	Spectra       = NewPerID[*model.Spectrum](KindSpectrum)
	Chromatograms = NewPerID[*model.Chromatogram](KindChromatogram)
	Proteins      = NewPerID[*model.Protein](KindProtein)
	Peptides      = NewPerPair[*model.Peptide](KindPeptide)
	ProteinGroups = NewPerID[*model.ProteinGroup](KindProteinGroup)

	MSLevels             = NewPerID[int](KindSpectrumMSLevel)
	PeakCounts           = NewPerID[int](KindSpectrumPeakCount)
	PrecursorCharges     = NewPerID[int](KindPrecursorCharge)
	PrecursorMZs         = NewPerID[float64](KindPrecursorMZ)
	PrecursorIntensities = NewPerID[float64](KindPrecursorIntensity)
	IntensitySums        = NewPerID[float64](KindSpectrumIntensitySum)
	ProteinScores        = NewPerID[float64](KindProteinScore)
	ProteinThresholds    = NewPerID[float64](KindProteinThreshold)

	// ReportedCharges and ReportedMZs hold the precursor values an identification reports for a
	// spectrum id. They survive peak-list swaps.
	ReportedCharges = NewPerID[int](KindReportedCharge)
	ReportedMZs     = NewPerID[float64](KindReportedMZ)

	ProteinToPeptides      = NewPerID[[]string](KindProteinToPeptides)
	PeptideToSpectrum      = NewPerID[string](KindPeptideToSpectrum)
	PeptideToModifications = NewPerID[[]model.Modification](KindPeptideToModifications)
	FileToSpectrumIDs      = NewPerID[[]string](KindFileToSpectrumIDs)
	ProteinGroupInference  = NewSingle[model.ProteinGroupMapping](KindProteinGroupInference)

	ExperimentMetadata     = NewSingle[*model.ExperimentMetadata](KindExperimentMetadata)
	IdentificationMetadata = NewSingle[*model.IdentificationMetadata](KindIdentificationMetadata)
	MzGraphMetadata        = NewSingle[*model.MzGraphMetadata](KindMzGraphMetadata)
)

// Single addresses a kind of arity 0.
type Single[T any] struct{ kind Kind }

// PerID addresses a kind of arity 1.
type PerID[T any] struct{ kind Kind }

// PerPair addresses a kind of arity 2.
type PerPair[T any] struct{ kind Kind }

func NewSingle[T any](k Kind) Single[T]   { mustArity(k, 0); return Single[T]{kind: k} }
func NewPerID[T any](k Kind) PerID[T]     { mustArity(k, 1); return PerID[T]{kind: k} }
func NewPerPair[T any](k Kind) PerPair[T] { mustArity(k, 2); return PerPair[T]{kind: k} }

func mustArity(k Kind, arity int) {
	if k.Arity() != arity {
		panic(fmt.Sprintf("cache: kind %s has arity %d, descriptor expects %d", k, k.Arity(), arity))
	}
}

func (d Single[T]) Kind() Kind { return d.kind }

func (d Single[T]) Get(c Cacher) (T, bool) {
	return cast[T](c.Get(SingleKey(d.kind)))
}

func (d Single[T]) Store(c Cacher, v T) bool {
	return c.Store(SingleKey(d.kind), v)
}

func (d PerID[T]) Kind() Kind { return d.kind }

func (d PerID[T]) Get(c Cacher, id string) (T, bool) {
	return cast[T](c.Get(IDKey(d.kind, id)))
}

func (d PerID[T]) Store(c Cacher, id string, v T) bool {
	return c.Store(IDKey(d.kind, id), v)
}

// GetBatch is aligned 1:1 with ids, substituting a not-found lookup for absent ids.
func (d PerID[T]) GetBatch(c Cacher, ids []string) []Lookup[T] {
	raw := c.GetBatch(d.kind, ids)
	out := make([]Lookup[T], len(raw))
	for i, l := range raw {
		out[i].Value, out[i].Found = cast[T](l.Value, l.Found)
	}
	return out
}

func (d PerID[T]) StoreBatch(c Cacher, values map[string]T) int {
	raw := make(map[string]any, len(values))
	for id, v := range values {
		raw[id] = v
	}
	return c.StoreBatch(d.kind, raw)
}

func (d PerPair[T]) Kind() Kind { return d.kind }

func (d PerPair[T]) Get(c Cacher, id1, id2 string) (T, bool) {
	return cast[T](c.Get(PairKey(d.kind, id1, id2)))
}

func (d PerPair[T]) Store(c Cacher, id1, id2 string, v T) bool {
	return c.Store(PairKey(d.kind, id1, id2), v)
}

func cast[T any](v any, found bool) (T, bool) {
	t, _ := v.(T)
	return t, found
}
