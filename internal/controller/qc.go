package controller

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/config"
	"github.com/Borislavv/go-ash-msdata/internal/analysis"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/internal/shared/rate"
)

// DeltaMassQC samples k protein buckets and reports theoretical versus experimental m/z deltas.
// It resolves from the source regardless of the current access mode. k <= 0 uses the configured
// sample count. Draws are paced when the configuration sets a rate.
func (c *Controller) DeltaMassQC(ctx context.Context, k int) (*analysis.DeltaMassReport, error) {
	if k <= 0 {
		k = c.cfg.QC.Samples
	}

	paceCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	src := qcSource{
		c:    c,
		mode: config.ModeCacheAndSource,
		pace: rate.NewPacer(paceCtx, c.cfg.QC.DrawsPerSec),
	}

	report, err := analysis.SampleDeltaMass(ctx, c.rng, src, k)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("requested", report.Requested).
		Int("deltas", len(report.Deltas)).
		Int("failures", report.Failures).
		Float64("error_rate", report.ErrorRate).
		Msg("delta mass qc")

	return report, nil
}

// qcSource adapts the controller to the sampler with an explicit mode.
type qcSource struct {
	c    *Controller
	mode config.AccessMode
	pace *rate.Pacer
}

func (s qcSource) Buckets(ctx context.Context) ([]string, error) {
	return s.c.proteinIDs(ctx, s.mode)
}

func (s qcSource) Items(ctx context.Context, bucket string) ([]string, error) {
	return settle(s.c.peptideIDs(ctx, s.mode, bucket))
}

func (s qcSource) Observation(ctx context.Context, bucket, item string) (*analysis.Observation, error) {
	if err := s.pace.Take(ctx); err != nil {
		return nil, err
	}
	pep, err := settle(s.c.peptide(ctx, s.mode, bucket, item))
	if err != nil || pep == nil {
		return nil, err
	}
	return &analysis.Observation{
		Sequence:       pep.Sequence,
		Modifications:  pep.Modifications,
		Charge:         pep.Charge,
		ExperimentalMZ: pep.ExperimentalMZ,
		SpectrumID:     pep.SpectrumRef,
	}, nil
}

func (s qcSource) Precursor(ctx context.Context, spectrumID string) (int, float64, error) {
	charge, err := precursorScalar(ctx, s.c, s.mode, fieldPrecursorCharge, cache.ReportedCharges, spectrumID)
	if err != nil {
		return unsetCharge, unsetValue, err
	}
	mz, err := precursorScalar(ctx, s.c, s.mode, fieldPrecursorMZ, cache.ReportedMZs, spectrumID)
	if err != nil {
		return unsetCharge, unsetValue, err
	}
	return charge, mz, nil
}
