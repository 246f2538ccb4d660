package controller

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/config"
	"github.com/Borislavv/go-ash-msdata/internal/analysis"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"github.com/Borislavv/go-ash-msdata/model"
)

func (c *Controller) ProteinIDs(ctx context.Context) ([]string, error) {
	return c.proteinIDs(ctx, c.Mode())
}

func (c *Controller) NumberOfProteins(ctx context.Context) (int, error) {
	ids, err := c.ProteinIDs(ctx)
	return len(ids), err
}

// ProteinByID resolves a protein with all of its peptides. Resolving a protein also caches its
// score and threshold, every peptide, and the precursor charge and m/z its PSMs report.
func (c *Controller) ProteinByID(ctx context.Context, id string) (*model.Protein, error) {
	return settle(c.protein(ctx, c.Mode(), id))
}

func (c *Controller) ProteinScore(ctx context.Context, id string) (float64, error) {
	return settle(proteinScalar(ctx, c, c.Mode(), cache.ProteinScores, id, func(p *model.Protein) float64 {
		return p.Score
	}))
}

func (c *Controller) ProteinThreshold(ctx context.Context, id string) (float64, error) {
	return settle(proteinScalar(ctx, c, c.Mode(), cache.ProteinThresholds, id, func(p *model.Protein) float64 {
		return p.Threshold
	}))
}

// PeptideIDs lists the PSM ids owned by a protein.
func (c *Controller) PeptideIDs(ctx context.Context, proteinID string) ([]string, error) {
	return settle(c.peptideIDs(ctx, c.Mode(), proteinID))
}

// PeptideByID returns the PSM in the context of its owning protein.
func (c *Controller) PeptideByID(ctx context.Context, proteinID, peptideID string) (*model.Peptide, error) {
	return settle(c.peptide(ctx, c.Mode(), proteinID, peptideID))
}

// PeptideSpectrumID returns the (possibly composite) spectrum id of a PSM, "" when unknown.
func (c *Controller) PeptideSpectrumID(ctx context.Context, peptideID string) (string, error) {
	return fetch(ctx, c, c.Mode(), perID(cache.KindPeptideToSpectrum, peptideID), "", func(context.Context) (string, error) {
		return "", nil
	})
}

func (c *Controller) PeptideModifications(ctx context.Context, peptideID string) ([]model.Modification, error) {
	return fetch(ctx, c, c.Mode(), perID(cache.KindPeptideToModifications, peptideID), nil, func(context.Context) ([]model.Modification, error) {
		return nil, nil
	})
}

// ProteinSequenceCoverage computes the coverage of a protein by its peptides' evidence.
// It is nil when the protein is unknown or not cached under cache_only.
func (c *Controller) ProteinSequenceCoverage(ctx context.Context, proteinID string) (*analysis.Coverage, error) {
	p, err := settle(c.protein(ctx, c.Mode(), proteinID))
	if err != nil || p == nil {
		return nil, err
	}
	evidence := make([]analysis.Evidence, 0, len(p.Peptides))
	for _, pep := range p.Peptides {
		evidence = append(evidence, analysis.Evidence{
			Sequence: pep.Sequence,
			Start:    pep.Evidence.Start,
			End:      pep.Evidence.End,
		})
	}
	cov := analysis.SequenceCoverage(p.Sequence, evidence)
	return &cov, nil
}

func (c *Controller) proteinIDs(ctx context.Context, mode config.AccessMode) ([]string, error) {
	return fetch(ctx, c, mode, single(cache.KindProteinIDs), nil, func(ctx context.Context) ([]string, error) {
		return c.streamIDs(ctx, source.RecordProtein, cache.KindProteinIDs)
	})
}

func (c *Controller) protein(ctx context.Context, mode config.AccessMode, id string) (*model.Protein, error) {
	return fetch(ctx, c, mode, perID(cache.KindProtein, id), nil, func(ctx context.Context) (*model.Protein, error) {
		rec, err := c.read(ctx, source.RecordProtein, cache.KindProtein, id)
		if err != nil || rec == nil {
			return nil, err
		}
		p, err := c.format.Transformer.Protein(rec)
		if err != nil {
			return nil, readFailure(err, cache.KindProtein, id, c.path)
		}
		c.storeProteinSides(p)
		return p, nil
	})
}

func (c *Controller) storeProteinSides(p *model.Protein) {
	cache.ProteinScores.Store(c.cache, p.ID, p.Score)
	cache.ProteinThresholds.Store(c.cache, p.ID, p.Threshold)
	cache.ProteinToPeptides.Store(c.cache, p.ID, p.PeptideIDs())

	for _, pep := range p.Peptides {
		cache.Peptides.Store(c.cache, p.ID, pep.ID, pep)
		cache.PeptideToModifications.Store(c.cache, pep.ID, pep.Modifications)
		if pep.SpectrumRef == "" {
			continue
		}
		cache.PeptideToSpectrum.Store(c.cache, pep.ID, pep.SpectrumRef)
		if pep.Charge > 0 {
			c.storeIfAbsent(cache.IDKey(cache.KindReportedCharge, pep.SpectrumRef), pep.Charge)
		}
		if pep.ExperimentalMZ > 0 {
			c.storeIfAbsent(cache.IDKey(cache.KindReportedMZ, pep.SpectrumRef), pep.ExperimentalMZ)
		}
	}
}

func proteinScalar(ctx context.Context, c *Controller, mode config.AccessMode, d cache.PerID[float64], id string, pick func(*model.Protein) float64) (float64, error) {
	return fetch(ctx, c, mode, perID(d.Kind(), id), unsetValue, func(ctx context.Context) (float64, error) {
		p, err := c.protein(ctx, mode, id)
		if err != nil || p == nil {
			return unsetValue, err
		}
		return pick(p), nil
	})
}

func (c *Controller) peptideIDs(ctx context.Context, mode config.AccessMode, proteinID string) ([]string, error) {
	return fetch(ctx, c, mode, perID(cache.KindProteinToPeptides, proteinID), nil, func(ctx context.Context) ([]string, error) {
		p, err := c.protein(ctx, mode, proteinID)
		if err != nil || p == nil {
			return nil, err
		}
		return p.PeptideIDs(), nil
	})
}

func (c *Controller) peptide(ctx context.Context, mode config.AccessMode, proteinID, peptideID string) (*model.Peptide, error) {
	return fetch(ctx, c, mode, perPair(cache.KindPeptide, proteinID, peptideID), nil, func(ctx context.Context) (*model.Peptide, error) {
		p, err := c.protein(ctx, mode, proteinID)
		if err != nil || p == nil {
			return nil, err
		}
		for _, pep := range p.Peptides {
			if pep.ID == peptideID {
				return pep, nil
			}
		}
		return nil, nil
	})
}
