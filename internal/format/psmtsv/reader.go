// Package psmtsv reads tab-separated peptide-spectrum match tables.
//
// A file holds a header row naming the columns and one row per (PSM, protein) pair.
// Lines starting with '#' are directives:
//
//	#meta          key  value
//	#spectra_data  id   name  location  format
//	#protein       id   accession  sequence  score  threshold  decoy  description
//	#group         groupId  P1  P2=psm_1,psm_2
//
// A #group member without '=' is supported by all of its peptides.
package psmtsv

import (
	"bufio"
	"context"
	"fmt"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"github.com/Borislavv/go-ash-msdata/model"
	"io"
	"os"
	"strings"
)

const ctxCheckEvery = 4096

const (
	ColPSMID         = "psm_id"
	ColSpectrumRef   = "spectrum_ref"
	ColSpectraFile   = "spectra_file"
	ColSequence      = "sequence"
	ColCharge        = "charge"
	ColExpMZ         = "exp_mz"
	ColCalcMZ        = "calc_mz"
	ColScore         = "score"
	ColRank          = "rank"
	ColProtein       = "protein"
	ColStart         = "start"
	ColEnd           = "end"
	ColPre           = "pre"
	ColPost          = "post"
	ColDecoy         = "decoy"
	ColModifications = "modifications"
)

var requiredColumns = []string{ColPSMID, ColProtein, ColSequence}

// Row is one raw table row; values are kept as text.
type Row struct {
	PSMID         string
	SpectrumRef   string
	SpectraFile   string
	Sequence      string
	Charge        string
	ExpMZ         string
	CalcMZ        string
	Score         string
	Rank          string
	Protein       string
	Start         string
	End           string
	Pre           string
	Post          string
	Decoy         string
	Modifications string
}

// ProteinHeader is a raw #protein directive.
type ProteinHeader struct {
	ID          string
	Accession   string
	Sequence    string
	Score       string
	Threshold   string
	Decoy       string
	Description string
}

// ProteinRecord is the raw record of one protein: its directive, if any, and its rows.
type ProteinRecord struct {
	ID     string
	Header *ProteinHeader
	Rows   []Row
}

type span struct {
	offset int64
	length int64
}

type proteinIndex struct {
	header *span
	rows   []span
}

type Reader struct {
	path    string
	f       *os.File
	columns map[string]int
	// first data byte after the header row
	dataOffset int64

	meta        map[string]string
	spectraData []model.SpectraDataRef
	groupIDs    []string
	groups      model.ProteinGroupMapping

	proteinIDs []string
	proteins   map[string]*proteinIndex
}

// Open indexes line offsets per protein. Ownership of the file handle passes to the reader.
func Open(ctx context.Context, path string) (source.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open psm table %s: %w", path, err)
	}
	r := &Reader{
		path:     path,
		f:        f,
		meta:     make(map[string]string),
		groups:   make(model.ProteinGroupMapping),
		proteins: make(map[string]*proteinIndex),
	}
	if err = r.buildIndex(ctx); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("index psm table %s: %w", path, err)
	}
	return r, nil
}

func (r *Reader) Path() string                        { return r.path }
func (r *Reader) Meta() map[string]string             { return r.meta }
func (r *Reader) SpectraData() []model.SpectraDataRef { return r.spectraData }
func (r *Reader) GroupIDs() []string                  { return r.groupIDs }
func (r *Reader) Groups() model.ProteinGroupMapping   { return r.groups }

func (r *Reader) StreamAllIDs(ctx context.Context, kind source.RecordKind, fn func(id string) error) error {
	if kind != source.RecordProtein {
		return nil
	}
	for i, id := range r.proteinIDs {
		if i%ctxCheckEvery == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) ReadByID(ctx context.Context, kind source.RecordKind, id string) (source.Record, error) {
	if kind != source.RecordProtein {
		return nil, fmt.Errorf("psm table holds no %s records: %w", kind, source.ErrNotFound)
	}
	idx, ok := r.proteins[id]
	if !ok {
		return nil, fmt.Errorf("protein %q: %w", id, source.ErrNotFound)
	}

	rec := &ProteinRecord{ID: id, Rows: make([]Row, 0, len(idx.rows))}
	if idx.header != nil {
		line, err := r.readLine(*idx.header)
		if err != nil {
			return nil, err
		}
		rec.Header = parseProteinHeader(splitLine(line)[1:])
	}
	for _, sp := range idx.rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := r.readLine(sp)
		if err != nil {
			return nil, err
		}
		rec.Rows = append(rec.Rows, r.parseRow(splitLine(line)))
	}
	return rec, nil
}

// Scan streams every data row in file order.
func (r *Reader) Scan(ctx context.Context, fn func(row Row) error) error {
	if _, err := r.f.Seek(r.dataOffset, io.SeekStart); err != nil {
		return fmt.Errorf("seek psm table: %w", err)
	}
	br := bufio.NewReaderSize(r.f, 256*1024)
	for n := 0; ; n++ {
		raw, err := br.ReadString('\n')
		if n%ctxCheckEvery == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if text := strings.TrimRight(raw, "\r\n"); text != "" && !strings.HasPrefix(text, "#") {
			if ferr := fn(r.parseRow(splitLine(text))); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

func (r *Reader) buildIndex(ctx context.Context) error {
	br := bufio.NewReaderSize(r.f, 256*1024)

	var offset int64
	for line := 1; ; line++ {
		raw, err := br.ReadString('\n')
		if line%ctxCheckEvery == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if len(raw) > 0 {
			sp := span{offset: offset, length: int64(len(raw))}
			if ierr := r.indexLine(strings.TrimRight(raw, "\r\n"), sp); ierr != nil {
				return fmt.Errorf("line %d: %w", line, ierr)
			}
			offset += int64(len(raw))
			if r.columns != nil && r.dataOffset == 0 {
				r.dataOffset = offset
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if r.columns == nil {
		return fmt.Errorf("missing header row")
	}
	return nil
}

func (r *Reader) indexLine(text string, sp span) error {
	if text == "" {
		return nil
	}
	fields := splitLine(text)

	if strings.HasPrefix(text, "#") {
		return r.indexDirective(strings.TrimPrefix(fields[0], "#"), fields[1:], sp)
	}

	if r.columns == nil {
		return r.readHeader(fields)
	}

	protein := field(fields, r.columns[ColProtein])
	if protein == "" {
		return fmt.Errorf("row without %s", ColProtein)
	}
	idx := r.protein(protein)
	idx.rows = append(idx.rows, sp)
	return nil
}

func (r *Reader) indexDirective(name string, args []string, sp span) error {
	switch name {
	case "meta":
		if len(args) < 2 {
			return fmt.Errorf("#meta needs key and value")
		}
		r.meta[args[0]] = args[1]
	case "spectra_data":
		if len(args) < 1 || args[0] == "" {
			return fmt.Errorf("#spectra_data needs an id")
		}
		r.spectraData = append(r.spectraData, model.SpectraDataRef{
			ID:         args[0],
			Name:       field(args, 1),
			Location:   field(args, 2),
			FileFormat: field(args, 3),
		})
	case "protein":
		if len(args) < 1 || args[0] == "" {
			return fmt.Errorf("#protein needs an id")
		}
		hs := sp
		r.protein(args[0]).header = &hs
	case "group":
		if len(args) < 2 {
			return fmt.Errorf("#group needs an id and at least one member")
		}
		return r.indexGroup(args[0], args[1:])
	}
	// unknown directives are comments
	return nil
}

func (r *Reader) indexGroup(id string, members []string) error {
	group, ok := r.groups[id]
	if !ok {
		group = make(map[string][]string, len(members))
		r.groups[id] = group
		r.groupIDs = append(r.groupIDs, id)
	}
	for _, m := range members {
		protein, peptides, filtered := strings.Cut(m, "=")
		if protein == "" {
			return fmt.Errorf("#group %s has an empty member", id)
		}
		if !filtered {
			group[protein] = nil
			continue
		}
		list := make([]string, 0)
		for _, p := range strings.Split(peptides, ",") {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		group[protein] = list
	}
	return nil
}

func (r *Reader) readHeader(fields []string) error {
	r.columns = make(map[string]int, len(fields))
	for i, name := range fields {
		r.columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := r.columns[col]; !ok {
			return fmt.Errorf("header misses required column %q", col)
		}
	}
	return nil
}

func (r *Reader) protein(id string) *proteinIndex {
	idx, ok := r.proteins[id]
	if !ok {
		idx = &proteinIndex{}
		r.proteins[id] = idx
		r.proteinIDs = append(r.proteinIDs, id)
	}
	return idx
}

func (r *Reader) readLine(sp span) (string, error) {
	buf := make([]byte, sp.length)
	if _, err := r.f.ReadAt(buf, sp.offset); err != nil && err != io.EOF {
		return "", fmt.Errorf("read psm table at %d: %w", sp.offset, err)
	}
	return strings.TrimRight(string(buf), "\r\n"), nil
}

func (r *Reader) parseRow(fields []string) Row {
	col := func(name string) string {
		i, ok := r.columns[name]
		if !ok {
			return ""
		}
		return field(fields, i)
	}
	return Row{
		PSMID:         col(ColPSMID),
		SpectrumRef:   col(ColSpectrumRef),
		SpectraFile:   col(ColSpectraFile),
		Sequence:      col(ColSequence),
		Charge:        col(ColCharge),
		ExpMZ:         col(ColExpMZ),
		CalcMZ:        col(ColCalcMZ),
		Score:         col(ColScore),
		Rank:          col(ColRank),
		Protein:       col(ColProtein),
		Start:         col(ColStart),
		End:           col(ColEnd),
		Pre:           col(ColPre),
		Post:          col(ColPost),
		Decoy:         col(ColDecoy),
		Modifications: col(ColModifications),
	}
}

func parseProteinHeader(args []string) *ProteinHeader {
	return &ProteinHeader{
		ID:          field(args, 0),
		Accession:   field(args, 1),
		Sequence:    field(args, 2),
		Score:       field(args, 3),
		Threshold:   field(args, 4),
		Decoy:       field(args, 5),
		Description: field(args, 6),
	}
}

func splitLine(text string) []string {
	return strings.Split(text, "\t")
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}
