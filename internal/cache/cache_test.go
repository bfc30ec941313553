package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache[[]string](0)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", []string{"a", "b"}, time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestMissAndExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache[int](0)
	defer c.Close()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.Get(ctx, "absent")
	assert.True(t, errors.Is(err, ErrMiss))

	require.NoError(t, c.Set(ctx, "k", 7, time.Second))
	now = now.Add(2 * time.Second)

	_, err = c.Get(ctx, "k")
	assert.True(t, errors.Is(err, ErrExpired))

	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache[int](0)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))

	require.NoError(t, c.Delete(ctx, "a"))
	require.NoError(t, c.Delete(ctx, "a"))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewInMemoryCache[int](time.Millisecond)
	c.Close()
	c.Close()
}

func TestListKey(t *testing.T) {
	assert.Equal(t, "contact_message:list", ListKey("contact_message"))
}
