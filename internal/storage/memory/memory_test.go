package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetGetDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Set(ctx, "k", "v1"))
	assert.NoError(t, store.Set(ctx, "k", "v2"))

	value, ok, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	assert.NoError(t, store.Delete(ctx, "k"))
	assert.NoError(t, store.Delete(ctx, "k"))

	_, ok, err = store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, ok)
}
