package controller

import (
	"context"
	stderrors "errors"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/model"
	"github.com/jmgilman/go/errors"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// spectrumKinds are invalidated whenever a sub-controller is attached, replaced or removed.
var spectrumKinds = []cache.Kind{
	cache.KindSpectrum,
	cache.KindSpectrumIDs,
	cache.KindSpectrumMSLevel,
	cache.KindSpectrumPeakCount,
	cache.KindSpectrumIntensitySum,
	cache.KindPrecursorCharge,
	cache.KindPrecursorMZ,
	cache.KindPrecursorIntensity,
}

// subControllers owns the controllers of attached peak-list files, keyed by spectra data id.
type subControllers struct {
	parent  *Controller
	mu      sync.RWMutex
	entries map[string]*Controller
}

func newSubControllers(parent *Controller) *subControllers {
	return &subControllers{parent: parent, entries: make(map[string]*Controller)}
}

func (s *subControllers) get(fileID string) *Controller {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[fileID]
}

func (s *subControllers) fileIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.entries))
}

func (s *subControllers) paths() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.entries))
	for id, sub := range s.entries {
		out[id] = sub.Path()
	}
	return out
}

// attach takes ownership of sub. A previous controller for fileID is closed, not dropped.
func (s *subControllers) attach(fileID string, sub *Controller) error {
	s.mu.Lock()
	old := s.entries[fileID]
	s.entries[fileID] = sub
	s.mu.Unlock()

	s.parent.invalidateSpectra()

	log := s.parent.logger.Info().Str("spectra_data", fileID).Str("file", sub.Path())
	if old == nil {
		log.Msg("sub-controller attached")
		return nil
	}
	log.Str("previous", old.Path()).Msg("sub-controller replaced")
	return old.Close()
}

func (s *subControllers) closeAll() error {
	s.mu.Lock()
	entries := s.entries
	s.entries = make(map[string]*Controller)
	s.mu.Unlock()

	var errs []error
	for _, id := range slices.Sorted(maps.Keys(entries)) {
		if err := entries[id].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func (c *Controller) invalidateSpectra() {
	for _, kind := range spectrumKinds {
		c.cache.ClearKind(kind)
	}
}

// AddMSController matches each file to a declared spectra data reference and attaches a
// sub-controller for it. Unmatched or ambiguous files are skipped with a warning.
func (c *Controller) AddMSController(ctx context.Context, files []string) error {
	matched := c.matchFiles(ctx, files)
	return c.attachAll(ctx, matched, nil)
}

// AddMSControllerMap attaches a sub-controller per spectra data id without name matching.
func (c *Controller) AddMSControllerMap(ctx context.Context, refToFile map[string]string) error {
	return c.attachAll(ctx, refToFile, nil)
}

// AddNewMSController extends oldMap with newFiles and returns the resulting reference to file map.
// fileTypes, when given, holds a format name per new file; empty names fall back to the extension.
// References already bound to the same file are left untouched.
func (c *Controller) AddNewMSController(ctx context.Context, oldMap map[string]string, newFiles, fileTypes []string) (map[string]string, error) {
	if len(fileTypes) > 0 && len(fileTypes) != len(newFiles) {
		return maps.Clone(oldMap), errors.Newf(errors.CodeInvalidInput,
			"got %d file types for %d files", len(fileTypes), len(newFiles))
	}

	formats := make(map[string]string, len(newFiles))
	for i, f := range newFiles {
		if len(fileTypes) > 0 {
			formats[f] = fileTypes[i]
		}
	}

	result := maps.Clone(oldMap)
	if result == nil {
		result = make(map[string]string)
	}

	pending := make(map[string]string)
	for ref, file := range c.matchFiles(ctx, newFiles) {
		if result[ref] == file && c.subs.get(ref) != nil {
			continue
		}
		pending[ref] = file
	}

	err := c.attachAll(ctx, pending, formats)
	for ref, file := range pending {
		if sub := c.subs.get(ref); sub != nil && sub.Path() == file {
			result[ref] = file
		}
	}
	return result, err
}

// ClearMSControllers closes and removes every sub-controller.
func (c *Controller) ClearMSControllers() error {
	err := c.subs.closeAll()
	c.invalidateSpectra()
	return err
}

// MSControllers returns the attached spectra data id to file path map.
func (c *Controller) MSControllers() map[string]string {
	return c.subs.paths()
}

func (c *Controller) attachAll(ctx context.Context, refToFile, formats map[string]string) error {
	if c.closed.Load() {
		return ErrClosed
	}

	var errs []error
	for _, ref := range slices.Sorted(maps.Keys(refToFile)) {
		file := refToFile[ref]
		sub, err := c.openSub(ctx, ref, file, formats[file])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err = c.subs.attach(ref, sub); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func (c *Controller) openSub(ctx context.Context, ref, file, formatName string) (*Controller, error) {
	f, err := c.registry.Resolve(file, formatName)
	if err != nil {
		return nil, initFailure(errors.Wrap(err, errors.CodeInvalidInput, "resolve format"), "resolve format", file, formatName)
	}
	if !f.PeakList {
		return nil, initFailure(errors.Newf(errors.CodeInvalidInput, "%s is not a peak list format", f.Name), "attach peak list", file, f.Name)
	}

	cfg := *c.cfg
	cfg.Mode = c.Mode()
	cfg.Telemetry = nil

	return Open(ctx, &cfg, c.base.With().Str("spectra_data", ref).Logger(), file,
		WithRegistry(c.registry),
		WithFormat(f.Name),
		withMetrics(c.metrics),
	)
}

// matchFiles pairs files with declared spectra data references: a file matches a reference whose
// location contains the file name, or whose id or name is contained in the file name. Files with
// no or several candidates, and references claimed by several files, stay unattached.
func (c *Controller) matchFiles(ctx context.Context, files []string) map[string]string {
	meta, _ := settle(fetch(ctx, c, c.Mode(), single(cache.KindIdentificationMetadata), nil,
		func(context.Context) (*model.IdentificationMetadata, error) { return nil, nil }))
	if meta == nil || len(meta.SpectraData) == 0 {
		if len(files) > 0 {
			c.logger.Warn().Strs("files", files).Msg("no spectra data references declared")
		}
		return map[string]string{}
	}

	claims := make(map[string][]string)
	for _, file := range files {
		candidates := matchRefs(meta.SpectraData, file)
		switch len(candidates) {
		case 0:
			c.logger.Warn().Str("file", file).Msg("peak list file unmatched")
		case 1:
			claims[candidates[0]] = append(claims[candidates[0]], file)
		default:
			c.logger.Warn().Str("file", file).Strs("candidates", candidates).Msg("peak list file ambiguous")
		}
	}

	out := make(map[string]string, len(claims))
	for ref, claimed := range claims {
		if len(claimed) > 1 {
			c.logger.Warn().Str("spectra_data", ref).Strs("files", claimed).Msg("spectra data claimed by several files")
			continue
		}
		out[ref] = claimed[0]
	}
	return out
}

func matchRefs(refs []model.SpectraDataRef, file string) []string {
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	var out []string
	for _, ref := range refs {
		if (ref.Location != "" && strings.Contains(ref.Location, base)) ||
			(ref.ID != "" && strings.Contains(base, ref.ID)) ||
			(ref.Name != "" && strings.Contains(stem, ref.Name)) {
			out = append(out, ref.ID)
		}
	}
	return out
}
