package psmtsv

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-ash-msdata/internal/idcodec"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"github.com/Borislavv/go-ash-msdata/model"
	"strconv"
	"strings"
)

// unset marks numeric values absent from the table.
const unset = -1

type Transformer struct{}

func (Transformer) Spectrum(source.Record) (*model.Spectrum, error) {
	return nil, fmt.Errorf("psm table spectrum: %w", errors.ErrUnsupported)
}

func (Transformer) Chromatogram(source.Record) (*model.Chromatogram, error) {
	return nil, fmt.Errorf("psm table chromatogram: %w", errors.ErrUnsupported)
}

func (Transformer) Protein(rec source.Record) (*model.Protein, error) {
	r, ok := rec.(*ProteinRecord)
	if !ok {
		return nil, fmt.Errorf("psm table transformer: unexpected record %T", rec)
	}

	p := &model.Protein{
		ID:        r.ID,
		Accession: r.ID,
		Score:     unset,
		Threshold: unset,
		Peptides:  make([]*model.Peptide, 0, len(r.Rows)),
	}
	if h := r.Header; h != nil {
		var err error
		if h.Accession != "" {
			p.Accession = h.Accession
		}
		p.Sequence = strings.ToUpper(h.Sequence)
		p.Description = h.Description
		if p.Score, err = parseFloat(h.Score, unset); err != nil {
			return nil, fmt.Errorf("protein %s score: %w", r.ID, err)
		}
		if p.Threshold, err = parseFloat(h.Threshold, unset); err != nil {
			return nil, fmt.Errorf("protein %s threshold: %w", r.ID, err)
		}
		p.Decoy = parseBool(h.Decoy)
	}

	for _, row := range r.Rows {
		pep, err := transformRow(row, p.Threshold)
		if err != nil {
			return nil, fmt.Errorf("protein %s psm %s: %w", r.ID, row.PSMID, err)
		}
		p.Peptides = append(p.Peptides, pep)
	}
	return p, nil
}

func transformRow(row Row, threshold float64) (*model.Peptide, error) {
	var err error
	pep := &model.Peptide{
		ID:          row.PSMID,
		ProteinID:   row.Protein,
		Sequence:    strings.ToUpper(row.Sequence),
		SpectrumRef: SpectrumID(row),
		Evidence: model.PeptideEvidence{
			Pre:   row.Pre,
			Post:  row.Post,
			Decoy: parseBool(row.Decoy),
		},
	}
	if pep.Charge, err = parseInt(row.Charge, 0); err != nil {
		return nil, fmt.Errorf("charge: %w", err)
	}
	if pep.ExperimentalMZ, err = parseFloat(row.ExpMZ, unset); err != nil {
		return nil, fmt.Errorf("exp_mz: %w", err)
	}
	if pep.CalculatedMZ, err = parseFloat(row.CalcMZ, unset); err != nil {
		return nil, fmt.Errorf("calc_mz: %w", err)
	}
	if pep.Score, err = parseFloat(row.Score, unset); err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	if pep.Rank, err = parseInt(row.Rank, 1); err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}
	if pep.Evidence.Start, err = parseInt(row.Start, 0); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if pep.Evidence.End, err = parseInt(row.End, 0); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	if pep.Modifications, err = ParseModifications(row.Modifications); err != nil {
		return nil, err
	}
	pep.PassThreshold = threshold == unset || pep.Score >= threshold
	return pep, nil
}

// SpectrumID is the externally visible spectrum id of a row: composite when the
// spectrum lives in a declared peak-list file, plain otherwise.
func SpectrumID(row Row) string {
	if row.SpectrumRef == "" {
		return ""
	}
	return idcodec.Encode(row.SpectrumRef, row.SpectraFile)
}

// ParseModifications reads "loc,name,accession,delta" items separated by ';'.
func ParseModifications(value string) ([]model.Modification, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return []model.Modification{}, nil
	}
	items := strings.Split(value, ";")
	mods := make([]model.Modification, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		parts := strings.Split(item, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("modification %q: want loc,name,accession,delta", item)
		}
		loc, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("modification %q location: %w", item, err)
		}
		delta, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("modification %q delta: %w", item, err)
		}
		mods = append(mods, model.Modification{
			Location:          loc,
			Name:              strings.TrimSpace(parts[1]),
			Accession:         strings.TrimSpace(parts[2]),
			MonoisotopicDelta: delta,
		})
	}
	return mods, nil
}

func parseFloat(v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}

func parseInt(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "decoy":
		return true
	}
	return false
}
