package rate

import (
	"context"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

// TestNewPacer_Disabled verifies that a non-positive rate yields a pacer that never blocks.
func TestNewPacer_Disabled(t *testing.T) {
	p := NewPacer(context.Background(), 0)
	require.Nil(t, p)
	require.Zero(t, p.Limit())
	require.NoError(t, p.Take(context.Background()))
}

// TestPacer_Take_ReceivesTokens verifies that Take returns within a reasonable time.
func TestPacer_Take_ReceivesTokens(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPacer(ctx, 100)
	require.Equal(t, 100, p.Limit())

	done := make(chan error, 1)
	go func() { done <- p.Take(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("pacer should hand out tokens")
	}
}

// TestPacer_Take_Paces verifies that consecutive tokens respect the configured rate.
func TestPacer_Take_Paces(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPacer(ctx, 20)
	require.NoError(t, p.Take(ctx))

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Take(ctx))
	}
	// 5 tokens at 20/s with a burst of 1 take at least ~150ms
	require.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

// TestPacer_Take_Canceled verifies that Take fails once the context is done.
func TestPacer_Take_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPacer(ctx, 100)
	require.NoError(t, p.Take(context.Background()))

	// buffered tokens drain, then the closed provider fails every Take
	cancel()
	require.Eventually(t, func() bool {
		return p.Take(context.Background()) != nil
	}, 2*time.Second, time.Millisecond)

	slowCtx, slowCancel := context.WithCancel(context.Background())
	defer slowCancel()
	slow := NewPacer(slowCtx, 1)
	require.NoError(t, slow.Take(context.Background()))

	waitCtx, waitCancel := context.WithCancel(context.Background())
	waitCancel()
	require.ErrorIs(t, slow.Take(waitCtx), context.Canceled)
}
