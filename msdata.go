// Package ashms exposes a cached, format-agnostic read API over proteomics experiment files:
// peak lists, identification tables and the spectra they reference.
package ashms

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/config"
	"github.com/Borislavv/go-ash-msdata/internal/analysis"
	"github.com/Borislavv/go-ash-msdata/internal/controller"
	"github.com/Borislavv/go-ash-msdata/internal/telemetry"
	"github.com/Borislavv/go-ash-msdata/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"io"
	"os"
	"time"
)

type (
	Option          = controller.Option
	Coverage        = analysis.Coverage
	DeltaMassReport = analysis.DeltaMassReport
)

const (
	CodeSourceReadFailed     = controller.CodeSourceReadFailed
	CodeInitializationFailed = controller.CodeInitializationFailed
)

var ErrClosed = controller.ErrClosed

// WithRegisterer registers the Prometheus collectors with reg.
func WithRegisterer(reg prometheus.Registerer) Option { return controller.WithRegisterer(reg) }

// WithFormat picks the format by name instead of by file extension.
func WithFormat(name string) Option { return controller.WithFormat(name) }

// DataAccessController is the query surface shared by every supported file format.
// Absent entities yield nil or the documented default, never an error.
type DataAccessController interface {
	Path() string
	Format() string
	Stats() CacheStats
	Mode() config.AccessMode
	SetMode(mode config.AccessMode) error

	SpectrumIDs(ctx context.Context) ([]string, error)
	NumberOfSpectra(ctx context.Context) (int, error)
	SpectrumByID(ctx context.Context, id string) (*model.Spectrum, error)
	SpectrumMSLevel(ctx context.Context, id string) (int, error)
	NumberOfPeaks(ctx context.Context, id string) (int, error)
	PrecursorCharge(ctx context.Context, id string) (int, error)
	PrecursorMZ(ctx context.Context, id string) (float64, error)
	PrecursorIntensity(ctx context.Context, id string) (float64, error)
	SpectrumIntensitySum(ctx context.Context, id string) (float64, error)
	ChromatogramIDs(ctx context.Context) ([]string, error)
	ChromatogramByID(ctx context.Context, id string) (*model.Chromatogram, error)

	ProteinIDs(ctx context.Context) ([]string, error)
	NumberOfProteins(ctx context.Context) (int, error)
	ProteinByID(ctx context.Context, id string) (*model.Protein, error)
	ProteinScore(ctx context.Context, id string) (float64, error)
	ProteinThreshold(ctx context.Context, id string) (float64, error)
	PeptideIDs(ctx context.Context, proteinID string) ([]string, error)
	PeptideByID(ctx context.Context, proteinID, peptideID string) (*model.Peptide, error)
	PeptideSpectrumID(ctx context.Context, peptideID string) (string, error)
	PeptideModifications(ctx context.Context, peptideID string) ([]model.Modification, error)
	ProteinSequenceCoverage(ctx context.Context, proteinID string) (*Coverage, error)
	ProteinGroupIDs(ctx context.Context) ([]string, error)
	ProteinGroupByID(ctx context.Context, id string) (*model.ProteinGroup, error)

	ExperimentMetadata(ctx context.Context) (*model.ExperimentMetadata, error)
	IdentificationMetadata(ctx context.Context) (*model.IdentificationMetadata, error)
	MzGraphMetadata(ctx context.Context) (*model.MzGraphMetadata, error)

	AddMSController(ctx context.Context, files []string) error
	AddMSControllerMap(ctx context.Context, refToFile map[string]string) error
	AddNewMSController(ctx context.Context, oldMap map[string]string, newFiles, fileTypes []string) (map[string]string, error)
	ClearMSControllers() error
	MSControllers() map[string]string

	DeltaMassQC(ctx context.Context, k int) (*DeltaMassReport, error)

	io.Closer
}

// CacheStats exposes the counters of a controller's cache.
type CacheStats interface {
	Len() int64
	Metrics() (hits, misses, stores, ignored int64)
}

// Experiment is an opened file together with its telemetry loop.
type Experiment struct {
	*controller.Controller
	telemetry *telemetry.Logs
}

var _ DataAccessController = (*Experiment)(nil)

// Open opens the file at path. A nil cfg means defaults. ctx bounds the open and the eager
// population pass only.
func Open(ctx context.Context, cfg *config.Controller, logger zerolog.Logger, path string, opts ...Option) (*Experiment, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	c, err := controller.Open(ctx, cfg, logger, path, opts...)
	if err != nil {
		return nil, err
	}
	// the loop lives until Close, not until ctx ends
	return &Experiment{
		Controller: c,
		telemetry:  telemetry.New(context.Background(), cfg.Telemetry, logger, c.Stats()),
	}, nil
}

func (e *Experiment) Stats() CacheStats { return e.Controller.Stats() }

// Close stops the telemetry loop and closes the controller with its sub-controllers.
func (e *Experiment) Close() error {
	_ = e.telemetry.Close()
	return e.Controller.Close()
}

// NewLogger builds the logger the controllers write to. Unknown levels fall back to info.
func NewLogger(cfg config.LogsCfg) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Str("service", "msdata").
		Logger()
}
