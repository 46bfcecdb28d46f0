package consumption

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/circuitops/boardtrack/internal/inventory"
)

// stubStore lets tests observe concurrency and inject per-part failures.
type stubStore struct {
	mu         sync.Mutex
	decrements map[int]float64
	failParts  map[int]bool
	delay      time.Duration

	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

func newStubStore() *stubStore {
	return &stubStore{
		decrements: make(map[int]float64),
		failParts:  make(map[int]bool),
	}
}

func (s *stubStore) Decrement(ctx context.Context, partID int, amount float64) error {
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	for {
		observed := s.maxInFlight.Load()
		if current <= observed || s.maxInFlight.CompareAndSwap(observed, current) {
			break
		}
	}

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failParts[partID] {
		return fmt.Errorf("part %d: injected failure", partID)
	}
	s.decrements[partID] += amount
	return nil
}

func (s *stubStore) Quantity(ctx context.Context, partID int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return -s.decrements[partID], nil
}

var _ inventory.Store = (*stubStore)(nil)

func TestExecute_AppliesAllDecrements(t *testing.T) {
	store := newStubStore()
	e := NewExecutor(store, DefaultWorkerLimit, zap.NewNop())

	usage := PartUsageMap{1001: 8, 1002: 4, 1003: 16, 2001: 2}
	result := e.Execute(context.Background(), usage)

	assert.True(t, result.AllProcessed)
	assert.Empty(t, result.FailedPartIDs)
	assert.Equal(t, map[int]float64{1001: 8, 1002: 4, 1003: 16, 2001: 2}, store.decrements)
}

func TestExecute_CollectsFailuresWithoutAborting(t *testing.T) {
	store := newStubStore()
	store.failParts[1002] = true

	e := NewExecutor(store, DefaultWorkerLimit, zap.NewNop())

	result := e.Execute(context.Background(), PartUsageMap{1001: 10, 1002: 5})

	assert.False(t, result.AllProcessed)
	assert.Equal(t, []int{1002}, result.FailedPartIDs)
	// The sibling mutation is still confirmed applied.
	assert.Equal(t, float64(10), store.decrements[1001])
}

func TestExecute_NeverExceedsWorkerLimit(t *testing.T) {
	store := newStubStore()
	store.delay = 10 * time.Millisecond

	const limit = 5
	e := NewExecutor(store, limit, zap.NewNop())

	usage := make(PartUsageMap, 40)
	for i := 0; i < 40; i++ {
		usage[5000+i] = 1
	}

	result := e.Execute(context.Background(), usage)

	require.True(t, result.AllProcessed)
	assert.Len(t, store.decrements, 40, "must wait for every mutation to settle")
	assert.LessOrEqual(t, store.maxInFlight.Load(), int64(limit))
}

func TestExecute_EmptyUsageMap(t *testing.T) {
	store := newStubStore()
	e := NewExecutor(store, DefaultWorkerLimit, zap.NewNop())

	result := e.Execute(context.Background(), PartUsageMap{})

	assert.True(t, result.AllProcessed)
	assert.Empty(t, result.FailedPartIDs)
}

func TestNewExecutor_DefaultsNonPositiveLimit(t *testing.T) {
	e := NewExecutor(newStubStore(), 0, zap.NewNop())
	assert.Equal(t, DefaultWorkerLimit, e.limit)
}
