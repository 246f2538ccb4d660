package psmtsv

import (
	"context"
	"fmt"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"github.com/Borislavv/go-ash-msdata/model"
	"path/filepath"
	"strings"
)

const FormatName = "psmtsv"

// Strategy scans every row once and stores the id collections and relationship maps.
// Protein objects are left to lazy resolution.
type Strategy struct{}

func (Strategy) Populate(ctx context.Context, r source.Reader, c cache.Cacher) error {
	tr, ok := r.(*Reader)
	if !ok {
		return fmt.Errorf("psm table strategy: unexpected reader %T", r)
	}

	proteinIDs := make([]string, 0)
	if err := r.StreamAllIDs(ctx, source.RecordProtein, func(id string) error {
		proteinIDs = append(proteinIDs, id)
		return nil
	}); err != nil {
		return err
	}

	var (
		proteinToPeptides = make(map[string][]string, len(proteinIDs))
		peptideToSpectrum = make(map[string]string)
		peptideToMods     = make(map[string][]model.Modification)
		fileToSpectra     = make(map[string][]string)
		fileSeen          = make(map[string]map[string]struct{})
		psmSeen           = make(map[string]struct{})
	)
	err := tr.Scan(ctx, func(row Row) error {
		proteinToPeptides[row.Protein] = append(proteinToPeptides[row.Protein], row.PSMID)

		if _, seen := psmSeen[row.PSMID]; seen {
			return nil
		}
		psmSeen[row.PSMID] = struct{}{}

		mods, err := ParseModifications(row.Modifications)
		if err != nil {
			return fmt.Errorf("psm %s: %w", row.PSMID, err)
		}
		peptideToMods[row.PSMID] = mods

		spectrumID := SpectrumID(row)
		if spectrumID == "" {
			return nil
		}
		peptideToSpectrum[row.PSMID] = spectrumID
		if row.SpectraFile != "" {
			seen, ok := fileSeen[row.SpectraFile]
			if !ok {
				seen = make(map[string]struct{})
				fileSeen[row.SpectraFile] = seen
			}
			if _, dup := seen[spectrumID]; !dup {
				seen[spectrumID] = struct{}{}
				fileToSpectra[row.SpectraFile] = append(fileToSpectra[row.SpectraFile], spectrumID)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// proteins declared by a directive only still get an (empty) relationship entry
	for _, id := range proteinIDs {
		if _, ok := proteinToPeptides[id]; !ok {
			proteinToPeptides[id] = []string{}
		}
	}
	groupIDs := append([]string{}, tr.GroupIDs()...)

	cache.ProteinIDs.Store(c, proteinIDs)
	cache.ChromatogramIDs.Store(c, []string{})
	cache.ProteinGroupIDs.Store(c, groupIDs)
	cache.ProteinGroupInference.Store(c, tr.Groups())
	cache.ProteinToPeptides.StoreBatch(c, proteinToPeptides)
	cache.PeptideToSpectrum.StoreBatch(c, peptideToSpectrum)
	cache.PeptideToModifications.StoreBatch(c, peptideToMods)
	cache.FileToSpectrumIDs.StoreBatch(c, fileToSpectra)

	meta := tr.Meta()
	cache.IdentificationMetadata.Store(c, &model.IdentificationMetadata{
		SpectraData:     tr.SpectraData(),
		SearchDatabases: splitList(meta["search_database"]),
		NumProteins:     len(proteinIDs),
		NumPeptides:     len(psmSeen),
	})

	name := filepath.Base(r.Path())
	experiment := &model.ExperimentMetadata{
		ID:          name,
		Name:        name,
		Version:     meta["version"],
		Software:    meta["software"],
		SourceFiles: []string{r.Path()},
		Params:      meta,
	}
	if v := meta["id"]; v != "" {
		experiment.ID = v
	}
	if v := meta["name"]; v != "" {
		experiment.Name = v
	}
	cache.ExperimentMetadata.Store(c, experiment)
	return nil
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Format is the tabular PSM identification format.
func Format() source.Format {
	return source.Format{
		Name:        FormatName,
		Extensions:  []string{".tsv", ".psm"},
		Open:        Open,
		Transformer: Transformer{},
		Strategy:    Strategy{},
	}
}
