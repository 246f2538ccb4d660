package cache

// Kind names every cached quantity. Each kind fixes its key arity and value shape.
type Kind uint8

const (
	// id collections
	KindSpectrumIDs Kind = iota
	KindChromatogramIDs
	KindProteinIDs
	KindProteinGroupIDs

	// per-id objects
	KindSpectrum
	KindChromatogram
	KindProtein
	KindPeptide
	KindProteinGroup

	// per-id derived scalars
	KindSpectrumMSLevel
	KindSpectrumPeakCount
	KindPrecursorCharge
	KindPrecursorMZ
	KindPrecursorIntensity
	KindSpectrumIntensitySum
	KindReportedCharge
	KindReportedMZ
	KindProteinScore
	KindProteinThreshold

	// relationship maps
	KindProteinToPeptides
	KindPeptideToSpectrum
	KindPeptideToModifications
	KindFileToSpectrumIDs
	KindProteinGroupInference

	// singleton metadata
	KindExperimentMetadata
	KindIdentificationMetadata
	KindMzGraphMetadata

	numKinds
)

type Shape uint8

const (
	ShapeScalar Shape = iota
	ShapeCollection
	ShapeMapping
)

type kindSpec struct {
	name  string
	arity int
	shape Shape
}

var kinds = [numKinds]kindSpec{
	KindSpectrumIDs:            {"spectrum_ids", 0, ShapeCollection},
	KindChromatogramIDs:        {"chromatogram_ids", 0, ShapeCollection},
	KindProteinIDs:             {"protein_ids", 0, ShapeCollection},
	KindProteinGroupIDs:        {"protein_group_ids", 0, ShapeCollection},
	KindSpectrum:               {"spectrum", 1, ShapeScalar},
	KindChromatogram:           {"chromatogram", 1, ShapeScalar},
	KindProtein:                {"protein", 1, ShapeScalar},
	KindPeptide:                {"peptide", 2, ShapeScalar},
	KindProteinGroup:           {"protein_group", 1, ShapeScalar},
	KindSpectrumMSLevel:        {"spectrum_ms_level", 1, ShapeScalar},
	KindSpectrumPeakCount:      {"spectrum_peak_count", 1, ShapeScalar},
	KindPrecursorCharge:        {"precursor_charge", 1, ShapeScalar},
	KindPrecursorMZ:            {"precursor_mz", 1, ShapeScalar},
	KindPrecursorIntensity:     {"precursor_intensity", 1, ShapeScalar},
	KindSpectrumIntensitySum:   {"spectrum_intensity_sum", 1, ShapeScalar},
	KindReportedCharge:         {"reported_charge", 1, ShapeScalar},
	KindReportedMZ:             {"reported_mz", 1, ShapeScalar},
	KindProteinScore:           {"protein_score", 1, ShapeScalar},
	KindProteinThreshold:       {"protein_threshold", 1, ShapeScalar},
	KindProteinToPeptides:      {"protein_to_peptides", 1, ShapeCollection},
	KindPeptideToSpectrum:      {"peptide_to_spectrum", 1, ShapeMapping},
	KindPeptideToModifications: {"peptide_to_modifications", 1, ShapeCollection},
	KindFileToSpectrumIDs:      {"file_to_spectrum_ids", 1, ShapeCollection},
	KindProteinGroupInference:  {"protein_group_inference", 0, ShapeMapping},
	KindExperimentMetadata:     {"experiment_metadata", 0, ShapeScalar},
	KindIdentificationMetadata: {"identification_metadata", 0, ShapeScalar},
	KindMzGraphMetadata:        {"mz_graph_metadata", 0, ShapeScalar},
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

func (k Kind) String() string {
	if k >= numKinds {
		return "unknown"
	}
	return kinds[k].name
}

// Arity is the number of ids addressing one entry of the kind.
func (k Kind) Arity() int { return kinds[k].arity }

func (k Kind) Shape() Shape { return kinds[k].shape }

// WriteOnce reports whether entries of the kind are immutable once stored.
// Index-shaped entries are populated by the eager pass and only a clear invalidates them.
func (k Kind) WriteOnce() bool {
	return k.Arity() == 0 || k.Shape() != ShapeScalar
}
