package consumption

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/circuitops/boardtrack/internal/inventory"
	"github.com/circuitops/boardtrack/internal/metrics"
)

// DefaultWorkerLimit bounds how many inventory decrements may be in flight
// at once for a single consumption operation.
const DefaultWorkerLimit = 5

// ExecutionResult reports how a batch of decrements settled. FailedPartIDs
// holds the parts whose mutation returned an error; decrements that already
// succeeded are not undone.
type ExecutionResult struct {
	FailedPartIDs []int
	AllProcessed  bool
}

// Executor applies a part usage map against the inventory store under a
// fixed concurrency bound.
type Executor struct {
	store  inventory.Store
	limit  int
	logger *zap.Logger
}

func NewExecutor(store inventory.Store, limit int, logger *zap.Logger) *Executor {
	if limit <= 0 {
		limit = DefaultWorkerLimit
	}
	return &Executor{
		store:  store,
		limit:  limit,
		logger: logger,
	}
}

// Execute schedules one decrement per usage entry, at most limit in flight.
// Each mutation is independent: a failure is recorded and never cancels or
// blocks the others. Execute returns only after every scheduled mutation has
// settled. There is no cross-part atomicity and no compensating rollback;
// each part's decrement commits independently (at-least-once per part).
func (e *Executor) Execute(ctx context.Context, usage PartUsageMap) ExecutionResult {
	sem := make(chan struct{}, e.limit)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var failed []int

	for partID, amount := range usage {
		wg.Add(1)
		go func(partID int, amount float64) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			metrics.DecrementsInFlight.Inc()
			timer := metrics.NewTimer()

			err := e.store.Decrement(ctx, partID, amount)

			metrics.DecrementsInFlight.Dec()

			if err != nil {
				metrics.RecordDecrement("error", timer.Stop())
				e.logger.Warn("Inventory decrement failed",
					zap.Int("part_id", partID),
					zap.Float64("amount", amount),
					zap.Error(err))

				mu.Lock()
				failed = append(failed, partID)
				mu.Unlock()
				return
			}

			metrics.RecordDecrement("ok", timer.Stop())
			e.logger.Debug("Inventory decremented",
				zap.Int("part_id", partID),
				zap.Float64("amount", amount))
		}(partID, amount)
	}

	wg.Wait()

	return ExecutionResult{
		FailedPartIDs: failed,
		AllProcessed:  len(failed) == 0,
	}
}
