package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySeenAfterMark(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Hour, 100)

	seen, err := m.Seen(ctx, "1:abc")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, m.Mark(ctx, "1:abc"))

	seen, err = m.Seen(ctx, "1:abc")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = m.Seen(ctx, "2:abc")
	require.NoError(t, err)
	assert.False(t, seen, "keys are per subscriber")
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(time.Hour, 100).WithClock(func() time.Time { return now })

	require.NoError(t, m.Mark(ctx, "1:abc"))

	now = now.Add(59 * time.Minute)
	seen, _ := m.Seen(ctx, "1:abc")
	assert.True(t, seen)

	now = now.Add(2 * time.Minute)
	seen, _ = m.Seen(ctx, "1:abc")
	assert.False(t, seen, "entry older than the window is gone")
}

func TestMemoryCapacityEviction(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(time.Hour, 3).WithClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Mark(ctx, fmt.Sprintf("key-%d", i)))
		now = now.Add(time.Minute)
	}
	require.NoError(t, m.Mark(ctx, "key-3"))

	assert.LessOrEqual(t, m.Len(), 3)

	seen, _ := m.Seen(ctx, "key-0")
	assert.False(t, seen, "oldest entry is evicted at capacity")
	seen, _ = m.Seen(ctx, "key-3")
	assert.True(t, seen)
}
