package model

// Protein is a protein identification together with its supporting peptides.
type Protein struct {
	ID          string
	Accession   string
	Description string
	Sequence    string
	Decoy       bool
	Score       float64
	Threshold   float64
	Peptides    []*Peptide
}

// PeptideIDs returns the ids of the protein's peptides in file order.
func (p *Protein) PeptideIDs() []string {
	if p == nil {
		return nil
	}
	ids := make([]string, 0, len(p.Peptides))
	for _, pep := range p.Peptides {
		ids = append(ids, pep.ID)
	}
	return ids
}

// Peptide is a peptide-spectrum match in the context of its owning protein.
// The same PSM id may appear under several proteins with different evidence.
type Peptide struct {
	ID             string
	ProteinID      string
	Sequence       string
	Charge         int
	ExperimentalMZ float64
	CalculatedMZ   float64
	Score          float64
	Rank           int
	PassThreshold  bool
	// SpectrumRef is the composite spectrum id when the spectrum lives in a peak-list file,
	// otherwise the plain local spectrum id.
	SpectrumRef   string
	Evidence      PeptideEvidence
	Modifications []Modification
}

// PeptideEvidence locates a peptide in its protein. Positions are 1-based and inclusive.
type PeptideEvidence struct {
	Start int
	End   int
	Pre   string
	Post  string
	Decoy bool
}

type Modification struct {
	Location          int
	Name              string
	Accession         string
	MonoisotopicDelta float64
}

// ProteinGroup is an ambiguity group of proteins indistinguishable by peptide evidence.
type ProteinGroup struct {
	ID string
	// Proteins are the exposed members: those supported by all of their peptides.
	Proteins []*Protein
	// Members holds every member protein id with its filtered peptide list, nil meaning all peptides.
	Members map[string][]string
	// Warnings lists inconsistencies between the group mapping and the proteins' own peptides.
	Warnings []string
}

// ProteinGroupMapping is the flat inferred group mapping: group id -> protein id -> peptide ids.
// A nil peptide list means the protein is supported by all of its peptides, unfiltered.
type ProteinGroupMapping map[string]map[string][]string
