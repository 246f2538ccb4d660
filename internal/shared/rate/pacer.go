// Package rate paces source reads issued by background work such as QC sampling.
package rate

import (
	"context"
	"go.uber.org/ratelimit"
)

// Pacer hands out at most limit tokens per second with a small burst buffer.
// A nil *Pacer never blocks.
type Pacer struct {
	ch    chan struct{}
	l     ratelimit.Limiter
	limit int
}

// NewPacer starts a token provider bound to ctx. It returns nil when perSec <= 0.
func NewPacer(ctx context.Context, perSec int) *Pacer {
	if perSec <= 0 {
		return nil
	}
	burst := int(float64(perSec) * 0.1)
	if burst < 1 {
		burst = 1
	}
	p := &Pacer{
		limit: perSec,
		ch:    make(chan struct{}, burst),
		l:     ratelimit.New(perSec, ratelimit.WithoutSlack),
	}
	go p.provider(ctx)
	return p
}

func (p *Pacer) provider(ctx context.Context) {
	defer close(p.ch)
	for {
		p.l.Take()
		select {
		case <-ctx.Done():
			return
		case p.ch <- struct{}{}:
		}
	}
}

// Take waits for a token. It fails once ctx is done or the provider has stopped.
func (p *Pacer) Take(ctx context.Context) error {
	if p == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case _, ok := <-p.ch:
		if !ok {
			return context.Canceled
		}
		return nil
	}
}

func (p *Pacer) Limit() int {
	if p == nil {
		return 0
	}
	return p.limit
}
