package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/rojgarbhaskar/jobpress/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request per host passes immediately", func(t *testing.T) {
		t.Parallel()

		l := pipeline.NewHostLimiter(1)

		start := time.Now()
		require.NoError(t, l.Wait(context.Background(), "a.example.com"))
		require.NoError(t, l.Wait(context.Background(), "b.example.com"))
		assert.Less(t, time.Since(start), 500*time.Millisecond, "different hosts must not pace each other")
	})

	t.Run("paces repeated requests to the same host", func(t *testing.T) {
		t.Parallel()

		l := pipeline.NewHostLimiter(20) // 50ms between requests

		start := time.Now()
		for i := 0; i < 3; i++ {
			require.NoError(t, l.Wait(context.Background(), "example.com"))
		}
		assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	})

	t.Run("returns error when context is canceled while waiting", func(t *testing.T) {
		t.Parallel()

		l := pipeline.NewHostLimiter(0.001)
		require.NoError(t, l.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := l.Wait(ctx, "example.com")
		assert.Error(t, err)
	})
}
