package telemetry

import (
	"bytes"
	"context"
	"github.com/Borislavv/go-ash-msdata/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeStats struct {
	hits atomic.Int64
}

func (f *fakeStats) Len() int64 { return 3 }
func (f *fakeStats) Metrics() (hits, misses, stores, ignored int64) {
	return f.hits.Load(), 1, 2, 0
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestLogs_EmitsCacheStats verifies that an enabled loop logs cache statistics.
func TestLogs_EmitsCacheStats(t *testing.T) {
	out := &syncBuffer{}
	stats := &fakeStats{}
	stats.hits.Store(5)

	l := New(context.Background(), &config.TelemetryCfg{Interval: 10 * time.Millisecond}, zerolog.New(out), stats)
	defer func() { require.NoError(t, l.Close()) }()

	require.Equal(t, 10*time.Millisecond, l.Interval())
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"message":"cache"`)
	}, time.Second, 5*time.Millisecond)
	require.Contains(t, out.String(), `"entries":3`)
	require.Contains(t, out.String(), `"component":"telemetry"`)
}

// TestLogs_DisabledIsNoop verifies that a nil config starts nothing and closes cleanly.
func TestLogs_DisabledIsNoop(t *testing.T) {
	out := &syncBuffer{}
	l := New(context.Background(), nil, zerolog.New(out), &fakeStats{})

	require.Zero(t, l.Interval())
	require.NoError(t, l.Close())
	require.Empty(t, out.String())
}

// TestDeltaSnapshot_HandlesReset verifies per-interval deltas including counter resets.
func TestDeltaSnapshot_HandlesReset(t *testing.T) {
	prev := snapshot{hits: 10, misses: 4, stores: 2}
	cur := snapshot{hits: 15, misses: 1, stores: 2}

	d := deltaSnapshot(prev, cur)
	require.Equal(t, uint64(5), d.hits)
	require.Equal(t, uint64(1), d.misses)
	require.Equal(t, uint64(0), d.stores)
	require.InDelta(t, 5.0/6.0, d.hitRatio(), 1e-9)
	require.Zero(t, snapshot{}.hitRatio())
}
