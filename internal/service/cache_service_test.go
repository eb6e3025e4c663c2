package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService_GetOrSet(t *testing.T) {
	cs := NewCacheService()
	now := time.Now()
	cs.now = func() time.Time { return now }

	calls := 0
	compute := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	v, err := cs.GetOrSet(context.Background(), "admin:stats", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = cs.GetOrSet(context.Background(), "admin:stats", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "значение взято из кэша")

	now = now.Add(2 * time.Minute)
	v, err = cs.GetOrSet(context.Background(), "admin:stats", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "просроченное значение пересчитано")
}

func TestCacheService_ErrorsAreNotCached(t *testing.T) {
	cs := NewCacheService()
	boom := errors.New("boom")

	_, err := cs.GetOrSet(context.Background(), "k", time.Minute, func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	_, found := cs.Get("k")
	assert.False(t, found)
}

func TestCacheService_InvalidateAndPurge(t *testing.T) {
	cs := NewCacheService()
	now := time.Now()
	cs.now = func() time.Time { return now }

	cs.Set("admin:stats", 1, time.Minute)
	cs.Set("admin:other", 2, time.Hour)
	cs.Set("jobs:1", 3, time.Second)

	cs.InvalidateByPrefix("admin:")
	_, found := cs.Get("admin:stats")
	assert.False(t, found)

	now = now.Add(time.Minute)
	cs.purgeExpired()
	cs.mu.RLock()
	assert.Empty(t, cs.cache)
	cs.mu.RUnlock()
}

func TestCacheService_RunStopsWithContext(t *testing.T) {
	cs := NewCacheService()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cs.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run не остановился")
	}
}
