// Package controller implements the cached data access controller: a uniform query surface over one
// open experiment file that answers from an in-process cache and resolves misses from the file's
// reader according to the data access mode. Spectra living in separate peak-list files are resolved
// through attached sub-controllers.
package controller

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/config"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/internal/format"
	"github.com/Borislavv/go-ash-msdata/internal/shared/random"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"github.com/jmgilman/go/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"sync"
	"sync/atomic"
)

type Option func(*options)

type options struct {
	registry   *source.Registry
	registerer prometheus.Registerer
	format     string
	metrics    *metrics
}

// WithRegistry replaces the bundled format registry.
func WithRegistry(r *source.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithRegisterer registers the controller collectors with reg when metrics are enabled in the config.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithFormat picks the format by name instead of by file extension.
func WithFormat(name string) Option {
	return func(o *options) { o.format = name }
}

func withMetrics(m *metrics) Option {
	return func(o *options) { o.metrics = m }
}

type Controller struct {
	cfg    *config.Controller
	base   zerolog.Logger
	logger zerolog.Logger

	path   string
	format source.Format

	// mu guards reader against Close while a resolution is reading.
	mu     sync.RWMutex
	reader source.Reader
	closed atomic.Bool

	cache   *cache.Cache
	mode    atomic.Value // config.AccessMode
	flight  singleflight.Group
	metrics *metrics

	registry *source.Registry
	subs     *subControllers
	rng      *random.Source
}

// Open binds a controller to the file at path and runs the format's eager population pass.
// Any failure closes the reader and yields an INITIALIZATION_FAILED error.
func Open(ctx context.Context, cfg *config.Controller, logger zerolog.Logger, path string, opts ...Option) (*Controller, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = format.NewRegistry()
	}

	if cfg == nil {
		cfg = config.Default()
	} else if err := cfg.AdjustConfig(); err != nil {
		return nil, initFailure(err, "invalid configuration", path, o.format)
	}

	f, err := o.registry.Resolve(path, o.format)
	if err != nil {
		return nil, initFailure(errors.Wrap(err, errors.CodeInvalidInput, "resolve format"), "resolve format", path, o.format)
	}

	if o.metrics == nil {
		var (
			reg       prometheus.Registerer
			namespace string
		)
		if cfg.Metrics.Enabled() {
			reg, namespace = o.registerer, cfg.Metrics.Namespace
		}
		o.metrics = newMetrics(reg, namespace)
	}

	c := &Controller{
		cfg:      cfg,
		base:     logger,
		logger:   logger.With().Str("component", "controller").Str("path", path).Str("format", f.Name).Logger(),
		path:     path,
		format:   f,
		cache:    cache.New(),
		metrics:  o.metrics,
		registry: o.registry,
		rng:      random.New(cfg.QC.Seed),
	}
	c.subs = newSubControllers(c)
	c.mode.Store(cfg.Mode)

	if c.reader, err = f.Open(ctx, path); err != nil {
		return nil, initFailure(err, "open source", path, f.Name)
	}
	if err = f.Strategy.Populate(ctx, c.reader, c.cache); err != nil {
		_ = c.reader.Close()
		c.cache.Clear()
		return nil, initFailure(err, "populate cache", path, f.Name)
	}

	c.logger.Info().
		Str("mode", string(cfg.Mode)).
		Int64("entries", c.cache.Len()).
		Msg("controller opened")

	return c, nil
}

func (c *Controller) Path() string { return c.path }

func (c *Controller) Format() string { return c.format.Name }

// Stats exposes the controller cache, mainly for its counters.
func (c *Controller) Stats() cache.Cacher { return c.cache }

func (c *Controller) Mode() config.AccessMode {
	return c.mode.Load().(config.AccessMode)
}

// SetMode affects every subsequent call, including calls delegated to sub-controllers.
func (c *Controller) SetMode(mode config.AccessMode) error {
	if !mode.Valid() {
		return errors.Newf(errors.CodeInvalidInput, "unknown access mode %q", mode)
	}
	c.mode.Store(mode)
	c.logger.Debug().Str("mode", string(mode)).Msg("access mode changed")
	return nil
}

// Close releases the source, closes every sub-controller and clears the cache. It is idempotent.
func (c *Controller) Close() error {
	if c.closed.Swap(true) {
		return nil
	}

	subErr := c.subs.closeAll()

	c.mu.Lock()
	err := c.reader.Close()
	c.reader = nil
	c.mu.Unlock()

	c.cache.Clear()
	c.logger.Info().Msg("controller closed")

	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "close source")
	}
	return subErr
}
