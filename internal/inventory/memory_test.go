package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Decrement(t *testing.T) {
	store := NewMemoryStore(map[int]float64{1001: 50})

	require.NoError(t, store.Decrement(context.Background(), 1001, 12.5))

	qty, err := store.Quantity(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, 37.5, qty)
}

func TestMemoryStore_UnknownPart(t *testing.T) {
	store := NewMemoryStore(nil)

	err := store.Decrement(context.Background(), 9999, 1)
	assert.ErrorIs(t, err, ErrPartNotFound)

	_, err = store.Quantity(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrPartNotFound)
}

func TestMemoryStore_ConcurrentDecrements(t *testing.T) {
	store := NewMemoryStore(map[int]float64{1001: 1000})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Decrement(context.Background(), 1001, 1)
		}()
	}
	wg.Wait()

	qty, err := store.Quantity(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, float64(900), qty)
}
