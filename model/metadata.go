package model

type ExperimentMetadata struct {
	ID          string
	Name        string
	Version     string
	Software    string
	SourceFiles []string
	Params      map[string]string
}

// SpectraDataRef is a declared reference to an external peak-list file.
type SpectraDataRef struct {
	ID         string
	Name       string
	Location   string
	FileFormat string
}

type IdentificationMetadata struct {
	SpectraData     []SpectraDataRef
	SearchDatabases []string
	NumProteins     int
	NumPeptides     int
}

// SpectraDataByID returns the reference with the given id.
func (m *IdentificationMetadata) SpectraDataByID(id string) (SpectraDataRef, bool) {
	if m == nil {
		return SpectraDataRef{}, false
	}
	for _, ref := range m.SpectraData {
		if ref.ID == id {
			return ref, true
		}
	}
	return SpectraDataRef{}, false
}

type MzGraphMetadata struct {
	SourceFile       string
	FileFormat       string
	NumSpectra       int
	NumChromatograms int
}
