// Package mgf reads Mascot Generic Format peak lists. Spectra are addressed by their
// 0-based block index; block offsets are indexed once at open and peaks are read on demand.
package mgf

import (
	"bufio"
	"context"
	"fmt"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	beginIons = "BEGIN IONS"
	endIons   = "END IONS"

	ctxCheckEvery = 4096
)

// Header holds the cheap per-spectrum values captured while indexing.
type Header struct {
	Title        string
	PepMass      float64
	PepIntensity float64
	Charge       int
	RTSeconds    float64

	offset int64
	length int64
}

// Record is a raw MGF block.
type Record struct {
	Index   int
	Headers map[string]string
	Peaks   [][2]float64
}

type Reader struct {
	path  string
	f     *os.File
	index []Header
}

// Open indexes the file. Ownership of the file handle passes to the returned reader.
func Open(ctx context.Context, path string) (source.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mgf %s: %w", path, err)
	}
	r := &Reader{path: path, f: f}
	if err = r.buildIndex(ctx); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("index mgf %s: %w", path, err)
	}
	return r, nil
}

func (r *Reader) Path() string { return r.path }
func (r *Reader) Len() int     { return len(r.index) }

// Header returns the indexed header of the spectrum with the given local id.
func (r *Reader) Header(id string) (Header, bool) {
	i, ok := r.position(id)
	if !ok {
		return Header{}, false
	}
	return r.index[i], true
}

func (r *Reader) StreamAllIDs(ctx context.Context, kind source.RecordKind, fn func(id string) error) error {
	if kind != source.RecordSpectrum {
		return nil
	}
	for i := range r.index {
		if i%ctxCheckEvery == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(strconv.Itoa(i)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) ReadByID(ctx context.Context, kind source.RecordKind, id string) (source.Record, error) {
	if kind != source.RecordSpectrum {
		return nil, fmt.Errorf("mgf holds no %s records: %w", kind, source.ErrNotFound)
	}
	i, ok := r.position(id)
	if !ok {
		return nil, fmt.Errorf("mgf spectrum %q: %w", id, source.ErrNotFound)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := r.index[i]
	rec, err := parseBlock(io.NewSectionReader(r.f, h.offset, h.length))
	if err != nil {
		return nil, fmt.Errorf("parse mgf block %d: %w", i, err)
	}
	rec.Index = i
	return rec, nil
}

func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

func (r *Reader) position(id string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimPrefix(id, "index="))
	if err != nil || i < 0 || i >= len(r.index) {
		return 0, false
	}
	return i, true
}

func (r *Reader) buildIndex(ctx context.Context) error {
	br := bufio.NewReaderSize(r.f, 256*1024)

	var (
		offset  int64
		line    int
		current *Header
	)
	for {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			line++
			if line%ctxCheckEvery == 0 && ctx.Err() != nil {
				return ctx.Err()
			}

			text := strings.TrimSpace(raw)
			switch {
			case text == beginIons:
				if current != nil {
					return fmt.Errorf("line %d: nested %s", line, beginIons)
				}
				current = &Header{offset: offset}
			case text == endIons:
				if current == nil {
					return fmt.Errorf("line %d: %s without %s", line, endIons, beginIons)
				}
				current.length = offset + int64(len(raw)) - current.offset
				r.index = append(r.index, *current)
				current = nil
			case current != nil:
				if key, value, ok := strings.Cut(text, "="); ok {
					if err := current.apply(strings.ToUpper(key), value); err != nil {
						return fmt.Errorf("line %d: %w", line, err)
					}
				}
			}
			offset += int64(len(raw))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if current != nil {
		return fmt.Errorf("unterminated block starting at byte %d", current.offset)
	}
	return nil
}

func (h *Header) apply(key, value string) (err error) {
	switch key {
	case "TITLE":
		h.Title = value
	case "PEPMASS":
		h.PepMass, h.PepIntensity, err = parsePepMass(value)
	case "CHARGE":
		h.Charge, err = parseCharge(value)
	case "RTINSECONDS":
		h.RTSeconds, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
	}
	return err
}

func parseBlock(rd io.Reader) (*Record, error) {
	rec := &Record{Headers: make(map[string]string)}
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" || text == beginIons || text == endIons || strings.HasPrefix(text, "#") {
			continue
		}
		if key, value, ok := strings.Cut(text, "="); ok {
			rec.Headers[strings.ToUpper(key)] = value
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed peak line %q", text)
		}
		mz, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("peak m/z %q: %w", fields[0], err)
		}
		intensity, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("peak intensity %q: %w", fields[1], err)
		}
		rec.Peaks = append(rec.Peaks, [2]float64{mz, intensity})
	}
	return rec, sc.Err()
}

// parsePepMass reads "mz [intensity]".
func parsePepMass(value string) (mz, intensity float64, err error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, 0, nil
	}
	if mz, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return 0, 0, fmt.Errorf("pepmass %q: %w", value, err)
	}
	if len(fields) > 1 {
		if intensity, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return 0, 0, fmt.Errorf("pepmass intensity %q: %w", value, err)
		}
	}
	return mz, intensity, nil
}

// parseCharge reads "2+", "3-", "2" or "2+ and 3+", keeping the first charge.
func parseCharge(value string) (int, error) {
	first := strings.Fields(strings.ReplaceAll(value, ",", " "))
	if len(first) == 0 {
		return 0, nil
	}
	token := first[0]
	sign := 1
	switch {
	case strings.HasSuffix(token, "+"):
		token = strings.TrimSuffix(token, "+")
	case strings.HasSuffix(token, "-"):
		token = strings.TrimSuffix(token, "-")
		sign = -1
	}
	charge, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("charge %q: %w", value, err)
	}
	return sign * charge, nil
}
