// Package telemetry periodically logs cache statistics of a controller.
package telemetry

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/config"
	"github.com/rs/zerolog"
	"time"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

// Stats is the part of the cache the loop samples.
type Stats interface {
	Len() int64
	Metrics() (hits, misses, stores, ignored int64)
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.TelemetryCfg
	logger   zerolog.Logger
	stats    Stats
	interval time.Duration
	done     chan struct{}
}

// New starts the loop when cfg is enabled. The returned value is always safe to Close.
func New(ctx context.Context, cfg *config.TelemetryCfg, logger zerolog.Logger, stats Stats) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	l := &Logs{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
		logger: logger.With().Str("component", "telemetry").Logger(),
		stats:  stats,
		done:   make(chan struct{}),
	}
	if cfg.Enabled() {
		l.interval = cfg.Interval
	}
	return l.run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

// Close stops the loop and waits for it to exit.
func (l *Logs) Close() error {
	l.cancel()
	<-l.done
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg.Enabled() && l.interval > 0 {
		go l.loop()
	} else {
		close(l.done)
	}
	return l
}

func (l *Logs) loop() {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	s := newSampler(l.stats)
	prev := s.snapshot()

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := s.snapshot()
			d := deltaSnapshot(prev, cur)
			prev = cur

			l.logger.Info().
				Str("interval", l.interval.String()).
				Uint64("hits", d.hits).
				Uint64("misses", d.misses).
				Uint64("stores", d.stores).
				Uint64("ignored", d.ignored).
				Float64("hit_ratio", d.hitRatio()).
				Int64("entries", l.stats.Len()).
				Msg("cache")
		}
	}
}
