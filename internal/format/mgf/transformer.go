package mgf

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"github.com/Borislavv/go-ash-msdata/model"
	"strconv"
	"strings"
)

// defaultMSLevel applies when a block carries no MSLEVEL header; MGF usually holds MS2 spectra.
const defaultMSLevel = 2

type Transformer struct{}

func (Transformer) Spectrum(rec source.Record) (*model.Spectrum, error) {
	r, ok := rec.(*Record)
	if !ok {
		return nil, fmt.Errorf("mgf transformer: unexpected record %T", rec)
	}

	s := &model.Spectrum{
		ID:      strconv.Itoa(r.Index),
		Index:   r.Index,
		Title:   r.Headers["TITLE"],
		MSLevel: defaultMSLevel,
	}
	if v, ok := r.Headers["MSLEVEL"]; ok {
		level, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("mslevel %q: %w", v, err)
		}
		s.MSLevel = level
	}
	if v, ok := r.Headers["RTINSECONDS"]; ok {
		rt, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("rtinseconds %q: %w", v, err)
		}
		s.RetentionTime = rt
	}
	if v, ok := r.Headers["PEPMASS"]; ok {
		mz, intensity, err := parsePepMass(v)
		if err != nil {
			return nil, err
		}
		charge, err := parseCharge(r.Headers["CHARGE"])
		if err != nil {
			return nil, err
		}
		s.Precursors = []model.Precursor{{MZ: mz, Charge: charge, Intensity: intensity}}
	}

	s.MZ = make([]float64, len(r.Peaks))
	s.Intensity = make([]float64, len(r.Peaks))
	for i, p := range r.Peaks {
		s.MZ[i], s.Intensity[i] = p[0], p[1]
	}
	return s, nil
}

func (Transformer) Chromatogram(source.Record) (*model.Chromatogram, error) {
	return nil, fmt.Errorf("mgf chromatogram: %w", errors.ErrUnsupported)
}

func (Transformer) Protein(source.Record) (*model.Protein, error) {
	return nil, fmt.Errorf("mgf protein: %w", errors.ErrUnsupported)
}
