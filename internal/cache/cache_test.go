package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummary struct {
	ResponseRate float64 `json:"responseRate"`
	TimeSaved    int     `json:"timeSaved"`
}

func TestSummaryRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := New(ctx, mr.Addr(), 5*time.Second)
	require.NoError(t, err)
	defer c.Close()

	var out fakeSummary
	assert.False(t, c.GetSummary(ctx, "u1", &out))

	c.SetSummary(ctx, "u1", fakeSummary{ResponseRate: 66.6, TimeSaved: 120})
	require.True(t, c.GetSummary(ctx, "u1", &out))
	assert.Equal(t, 66.6, out.ResponseRate)
	assert.Equal(t, 120, out.TimeSaved)

	// Other users never see each other's entries.
	assert.False(t, c.GetSummary(ctx, "u2", &out))
}

func TestSummaryExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := New(ctx, mr.Addr(), time.Second)
	require.NoError(t, err)
	defer c.Close()

	c.SetSummary(ctx, "u1", fakeSummary{TimeSaved: 1})
	mr.FastForward(2 * time.Second)

	var out fakeSummary
	assert.False(t, c.GetSummary(ctx, "u1", &out))
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	var out fakeSummary
	assert.False(t, c.GetSummary(context.Background(), "u1", &out))
	c.SetSummary(context.Background(), "u1", fakeSummary{})
	assert.NoError(t, c.Close())
}

func TestNewBadAddr(t *testing.T) {
	_, err := New(context.Background(), "127.0.0.1:1", time.Second)
	assert.Error(t, err)
}
