package controller

import (
	"context"
	"errors"
	"fmt"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"github.com/Borislavv/go-ash-msdata/model"
	"sync/atomic"
)

// fakeReader serves in-memory spectra and counts every read.
type fakeReader struct {
	path     string
	spectra  map[string]*model.Spectrum
	order    []string
	failOn   map[string]bool
	reads    atomic.Int64
	closed   atomic.Bool
	populate error
}

func (r *fakeReader) Path() string { return r.path }

func (r *fakeReader) ReadByID(_ context.Context, kind source.RecordKind, id string) (source.Record, error) {
	r.reads.Add(1)
	if r.failOn[id] {
		return nil, fmt.Errorf("disk on fire reading %s", id)
	}
	if kind != source.RecordSpectrum {
		return nil, source.ErrNotFound
	}
	s, ok := r.spectra[id]
	if !ok {
		return nil, fmt.Errorf("spectrum %s: %w", id, source.ErrNotFound)
	}
	return s, nil
}

func (r *fakeReader) StreamAllIDs(_ context.Context, kind source.RecordKind, fn func(id string) error) error {
	if kind != source.RecordSpectrum {
		return nil
	}
	for _, id := range r.order {
		if err := fn(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.closed.Store(true)
	return nil
}

type fakeTransformer struct{}

func (fakeTransformer) Spectrum(rec source.Record) (*model.Spectrum, error) {
	s := rec.(*model.Spectrum)
	cp := *s
	return &cp, nil
}

func (fakeTransformer) Chromatogram(source.Record) (*model.Chromatogram, error) {
	return nil, errors.ErrUnsupported
}

func (fakeTransformer) Protein(source.Record) (*model.Protein, error) {
	return nil, errors.ErrUnsupported
}

// fakeStrategy stores only the spectrum id list, leaving every per-id entry to lazy resolution.
type fakeStrategy struct{}

func (fakeStrategy) Populate(ctx context.Context, r source.Reader, c cache.Cacher) error {
	if err := r.(*fakeReader).populate; err != nil {
		return err
	}
	ids := make([]string, 0)
	if err := r.StreamAllIDs(ctx, source.RecordSpectrum, func(id string) error {
		ids = append(ids, id)
		return nil
	}); err != nil {
		return err
	}
	cache.SpectrumIDs.Store(c, ids)
	return nil
}

func newFakeReader(path string) *fakeReader {
	return &fakeReader{
		path: path,
		spectra: map[string]*model.Spectrum{
			"s1": {
				ID:         "s1",
				MSLevel:    2,
				Precursors: []model.Precursor{{MZ: 500.25, Charge: 2, Intensity: 1000}},
				MZ:         []float64{100, 200, 300},
				Intensity:  []float64{1, 2, 3},
			},
			"s2": {ID: "s2", MSLevel: 1, MZ: []float64{150}, Intensity: []float64{5}},
		},
		order:  []string{"s1", "s2"},
		failOn: map[string]bool{},
	}
}

// fakeFormat returns a format whose Open always yields r.
func fakeFormat(r *fakeReader, openErr error) source.Format {
	return source.Format{
		Name:       "fake",
		Extensions: []string{".fake"},
		Open: func(_ context.Context, path string) (source.Reader, error) {
			if openErr != nil {
				return nil, openErr
			}
			r.path = path
			return r, nil
		},
		Transformer: fakeTransformer{},
		Strategy:    fakeStrategy{},
		PeakList:    true,
	}
}
