package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiered_L1Hit(t *testing.T) {
	l1, l2 := newMemStore(), newMemStore()
	c := NewTiered(l1, l2, time.Minute)
	l1.data["k"] = []byte("v1")

	val, found, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v1"), val)
}

func TestTiered_L2HitBackfillsL1(t *testing.T) {
	l1, l2 := newMemStore(), newMemStore()
	c := NewTiered(l1, l2, time.Minute)
	l2.data["k"] = []byte("v2")

	val, found, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v2"), val)
	assert.Equal(t, []byte("v2"), l1.data["k"])
}

func TestTiered_Miss(t *testing.T) {
	c := NewTiered(newMemStore(), newMemStore(), time.Minute)

	_, found, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTiered_SetAndDeleteBothLevels(t *testing.T) {
	l1, l2 := newMemStore(), newMemStore()
	c := NewTiered(l1, l2, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	assert.Contains(t, l1.data, "k")
	assert.Contains(t, l2.data, "k")

	require.NoError(t, c.Delete(ctx, "k"))
	assert.NotContains(t, l1.data, "k")
	assert.NotContains(t, l2.data, "k")
}

func TestTiered_L2Error(t *testing.T) {
	l2 := newMemStore()
	l2.err = errUnavailable
	c := NewTiered(newMemStore(), l2, time.Minute)

	_, _, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, errUnavailable)
}

func TestLocal_SetGetDelete(t *testing.T) {
	l, err := NewLocal(100)
	require.NoError(t, err)
	defer l.Close()
	ctx := context.Background()

	require.NoError(t, l.Set(ctx, "k", []byte("v"), time.Hour))
	l.Wait()

	val, found, err := l.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, l.Delete(ctx, "k"))
	_, found, _ = l.Get(ctx, "k")
	assert.False(t, found)
}
