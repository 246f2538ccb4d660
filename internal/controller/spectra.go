package controller

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/config"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/internal/idcodec"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"github.com/Borislavv/go-ash-msdata/model"
)

const (
	unsetLevel  = -1
	unsetValue  = -1.0
	unsetCharge = 0
	unsetPeaks  = 0
)

// SpectrumIDs lists the spectra of the bound file followed by the composite ids of the spectra
// referenced in every attached peak-list file.
func (c *Controller) SpectrumIDs(ctx context.Context) ([]string, error) {
	return settle(c.spectrumIDs(ctx, c.Mode()))
}

func (c *Controller) NumberOfSpectra(ctx context.Context) (int, error) {
	ids, err := c.SpectrumIDs(ctx)
	return len(ids), err
}

// SpectrumByID accepts a local id, a composite "localId!fileId" id or a PSM id.
// A spectrum living in a file without an attached sub-controller yields nil.
func (c *Controller) SpectrumByID(ctx context.Context, id string) (*model.Spectrum, error) {
	return settle(c.spectrum(ctx, c.Mode(), id))
}

func (c *Controller) SpectrumMSLevel(ctx context.Context, id string) (int, error) {
	return settle(spectrumScalar(ctx, c, c.Mode(), fieldMSLevel, id))
}

func (c *Controller) NumberOfPeaks(ctx context.Context, id string) (int, error) {
	return settle(spectrumScalar(ctx, c, c.Mode(), fieldPeakCount, id))
}

// PrecursorCharge prefers the charge of the resolved spectrum and falls back to the one
// reported by an identification of that spectrum.
func (c *Controller) PrecursorCharge(ctx context.Context, id string) (int, error) {
	return precursorScalar(ctx, c, c.Mode(), fieldPrecursorCharge, cache.ReportedCharges, id)
}

func (c *Controller) PrecursorMZ(ctx context.Context, id string) (float64, error) {
	return precursorScalar(ctx, c, c.Mode(), fieldPrecursorMZ, cache.ReportedMZs, id)
}

func (c *Controller) PrecursorIntensity(ctx context.Context, id string) (float64, error) {
	return settle(spectrumScalar(ctx, c, c.Mode(), fieldPrecursorIntensity, id))
}

func (c *Controller) SpectrumIntensitySum(ctx context.Context, id string) (float64, error) {
	return settle(spectrumScalar(ctx, c, c.Mode(), fieldIntensitySum, id))
}

func (c *Controller) ChromatogramIDs(ctx context.Context) ([]string, error) {
	return fetch(ctx, c, c.Mode(), single(cache.KindChromatogramIDs), nil, func(ctx context.Context) ([]string, error) {
		return c.streamIDs(ctx, source.RecordChromatogram, cache.KindChromatogramIDs)
	})
}

func (c *Controller) ChromatogramByID(ctx context.Context, id string) (*model.Chromatogram, error) {
	return fetch(ctx, c, c.Mode(), perID(cache.KindChromatogram, id), nil, func(ctx context.Context) (*model.Chromatogram, error) {
		rec, err := c.read(ctx, source.RecordChromatogram, cache.KindChromatogram, id)
		if err != nil || rec == nil {
			return nil, err
		}
		ch, err := c.format.Transformer.Chromatogram(rec)
		if err != nil {
			return nil, readFailure(err, cache.KindChromatogram, id, c.path)
		}
		return ch, nil
	})
}

func (c *Controller) spectrumIDs(ctx context.Context, mode config.AccessMode) ([]string, error) {
	return fetch(ctx, c, mode, single(cache.KindSpectrumIDs), nil, func(ctx context.Context) ([]string, error) {
		ids, err := c.streamIDs(ctx, source.RecordSpectrum, cache.KindSpectrumIDs)
		if err != nil {
			return nil, err
		}
		for _, fileID := range c.subs.fileIDs() {
			if composite, ok := cache.FileToSpectrumIDs.Get(c.cache, fileID); ok {
				ids = append(ids, composite...)
			}
		}
		return ids, nil
	})
}

// spectrumKey maps a PSM id onto the composite id of its spectrum, so every access path
// shares one cache entry. Other ids are returned as is.
func (c *Controller) spectrumKey(id string) string {
	if idcodec.IsComposite(id) {
		return id
	}
	if ref, ok := cache.PeptideToSpectrum.Get(c.cache, id); ok && ref != "" {
		return ref
	}
	return id
}

func (c *Controller) spectrum(ctx context.Context, mode config.AccessMode, id string) (*model.Spectrum, error) {
	id = c.spectrumKey(id)
	return fetch(ctx, c, mode, perID(cache.KindSpectrum, id), nil, func(ctx context.Context) (*model.Spectrum, error) {
		s, err := c.resolveSpectrum(ctx, mode, id)
		if err != nil || s == nil {
			return nil, err
		}
		c.storeSpectrumSides(s, id)
		return s, nil
	})
}

// resolveSpectrum locates the spectrum of a normalized id: a composite id goes to the
// sub-controller of its file, anything else is read from the bound file.
func (c *Controller) resolveSpectrum(ctx context.Context, mode config.AccessMode, spectrumID string) (*model.Spectrum, error) {
	if localID, fileID, ok := idcodec.Decode(spectrumID); ok {
		sub := c.subs.get(fileID)
		if sub == nil {
			return nil, errUnavailable
		}
		s, err := sub.spectrum(ctx, mode, localID)
		if err != nil || s == nil {
			return nil, err
		}
		return s.WithID(spectrumID), nil
	}

	rec, err := c.read(ctx, source.RecordSpectrum, cache.KindSpectrum, spectrumID)
	if err != nil || rec == nil {
		return nil, err
	}
	s, err := c.format.Transformer.Spectrum(rec)
	if err != nil {
		return nil, readFailure(err, cache.KindSpectrum, spectrumID, c.path)
	}
	return s, nil
}

type spectrumField[T comparable] struct {
	entry cache.PerID[T]
	def   T
	pick  func(s *model.Spectrum) T
}

var (
	fieldMSLevel = spectrumField[int]{cache.MSLevels, unsetLevel, func(s *model.Spectrum) int {
		return s.MSLevel
	}}
	fieldPeakCount = spectrumField[int]{cache.PeakCounts, unsetPeaks, func(s *model.Spectrum) int {
		return s.PeakCount()
	}}
	fieldIntensitySum = spectrumField[float64]{cache.IntensitySums, unsetValue, func(s *model.Spectrum) float64 {
		return s.IntensitySum()
	}}
	fieldPrecursorCharge = spectrumField[int]{cache.PrecursorCharges, unsetCharge, func(s *model.Spectrum) int {
		if p, ok := s.Precursor(); ok {
			return p.Charge
		}
		return unsetCharge
	}}
	fieldPrecursorMZ = spectrumField[float64]{cache.PrecursorMZs, unsetValue, func(s *model.Spectrum) float64 {
		if p, ok := s.Precursor(); ok && p.MZ > 0 {
			return p.MZ
		}
		return unsetValue
	}}
	fieldPrecursorIntensity = spectrumField[float64]{cache.PrecursorIntensities, unsetValue, func(s *model.Spectrum) float64 {
		if p, ok := s.Precursor(); ok && p.Intensity > 0 {
			return p.Intensity
		}
		return unsetValue
	}}
)

func (f spectrumField[T]) store(c *Controller, id string, s *model.Spectrum) {
	f.entry.Store(c.cache, id, f.pick(s))
}

// storeSpectrumSides caches the cheap scalars of s under its own id and under the requested one.
func (c *Controller) storeSpectrumSides(s *model.Spectrum, requested string) {
	ids := []string{s.ID}
	if requested != s.ID {
		ids = append(ids, requested)
	}
	for _, id := range ids {
		fieldMSLevel.store(c, id, s)
		fieldPeakCount.store(c, id, s)
		fieldIntensitySum.store(c, id, s)
		fieldPrecursorCharge.store(c, id, s)
		fieldPrecursorMZ.store(c, id, s)
		fieldPrecursorIntensity.store(c, id, s)
	}
}

// spectrumScalar resolves a per-spectrum scalar through the spectrum itself.
func spectrumScalar[T comparable](ctx context.Context, c *Controller, mode config.AccessMode, f spectrumField[T], id string) (T, error) {
	id = c.spectrumKey(id)
	return fetch(ctx, c, mode, perID(f.entry.Kind(), id), f.def, func(ctx context.Context) (T, error) {
		s, err := c.spectrum(ctx, mode, id)
		if err != nil || s == nil {
			return f.def, err
		}
		return f.pick(s), nil
	})
}

// precursorScalar answers from the spectrum and uses the reported value when the spectrum is
// unavailable, unresolved or lacks the value. The reported entry lives apart from the
// spectrum-derived one, so a swap of peak-list files only drops the latter.
func precursorScalar[T comparable](ctx context.Context, c *Controller, mode config.AccessMode, f spectrumField[T], reported cache.PerID[T], id string) (T, error) {
	v, err := spectrumScalar(ctx, c, mode, f, id)
	if err != nil && !isUnavailable(err) {
		return f.def, err
	}
	if err != nil || v == f.def {
		if r, ok := reported.Get(c.cache, c.spectrumKey(id)); ok {
			return r, nil
		}
		return f.def, nil
	}
	return v, nil
}
