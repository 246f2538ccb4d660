package mgf

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"github.com/Borislavv/go-ash-msdata/model"
	"path/filepath"
)

const FormatName = "MGF"

type headerIndex interface {
	Header(id string) (Header, bool)
}

// Strategy stores spectrum ids and the precursor values captured in the block headers.
// Peaks are left to lazy resolution.
type Strategy struct{}

func (Strategy) Populate(ctx context.Context, r source.Reader, c cache.Cacher) error {
	headers, _ := r.(headerIndex)

	ids := make([]string, 0)
	charges := make(map[string]int)
	mzs := make(map[string]float64)
	intensities := make(map[string]float64)

	err := r.StreamAllIDs(ctx, source.RecordSpectrum, func(id string) error {
		ids = append(ids, id)
		if headers == nil {
			return nil
		}
		if h, ok := headers.Header(id); ok {
			if h.Charge != 0 {
				charges[id] = h.Charge
			}
			if h.PepMass > 0 {
				mzs[id] = h.PepMass
			}
			if h.PepIntensity > 0 {
				intensities[id] = h.PepIntensity
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.SpectrumIDs.Store(c, ids)
	cache.ChromatogramIDs.Store(c, []string{})
	cache.PrecursorCharges.StoreBatch(c, charges)
	cache.PrecursorMZs.StoreBatch(c, mzs)
	cache.PrecursorIntensities.StoreBatch(c, intensities)

	name := filepath.Base(r.Path())
	cache.MzGraphMetadata.Store(c, &model.MzGraphMetadata{
		SourceFile: r.Path(),
		FileFormat: FormatName,
		NumSpectra: len(ids),
	})
	cache.ExperimentMetadata.Store(c, &model.ExperimentMetadata{
		ID:          name,
		Name:        name,
		SourceFiles: []string{r.Path()},
	})
	return nil
}

// Format is the MGF peak-list format.
func Format() source.Format {
	return source.Format{
		Name:        FormatName,
		Extensions:  []string{".mgf"},
		Open:        Open,
		Transformer: Transformer{},
		Strategy:    Strategy{},
		PeakList:    true,
	}
}
