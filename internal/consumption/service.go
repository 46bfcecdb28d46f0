package consumption

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circuitops/boardtrack/internal/inventory"
	"github.com/circuitops/boardtrack/internal/metrics"
	"github.com/circuitops/boardtrack/internal/production"
)

// PartConsumption is one line of the per-part consumption summary.
type PartConsumption struct {
	PartID   int     `json:"partId"`
	Consumed float64 `json:"consumed"`
}

// Result is the composite outcome of a consumption operation. FailedPartIDs
// is empty on full success; the operation itself succeeds at the transport
// level either way, and the caller reacts per part.
type Result struct {
	PCBSummary    []BoardUsage      `json:"pcbSummary"`
	PartSummary   []PartConsumption `json:"partSummary"`
	FailedPartIDs []int             `json:"failedPartIds,omitempty"`
	AllProcessed  bool              `json:"allProcessed"`
}

// Service orchestrates summarize → aggregate → decrement for one operation.
type Service struct {
	summarizer *production.Summarizer
	aggregator *Aggregator
	executor   *Executor
	logger     *zap.Logger
}

func NewService(store inventory.Store, logger *zap.Logger) *Service {
	return &Service{
		summarizer: production.NewSummarizer(logger),
		aggregator: NewAggregator(logger),
		executor:   NewExecutor(store, DefaultWorkerLimit, logger),
		logger:     logger,
	}
}

// ConsumeFromImages summarizes raw inspection images first, then consumes
// the resulting per-board-type counts.
func (s *Service) ConsumeFromImages(ctx context.Context, records []production.ImageRecord) Result {
	summaries := s.summarizer.Summarize(records)

	pairs := make([]BoardUsage, 0, len(summaries))
	for _, summary := range summaries {
		pairs = append(pairs, BoardUsage{
			BoardType: summary.Board.Name,
			Count:     summary.ProducedCount,
		})
	}

	return s.Consume(ctx, pairs)
}

// Consume expands the given board usage pairs through the BOM and applies
// the consolidated decrements against the inventory store.
func (s *Service) Consume(ctx context.Context, pairs []BoardUsage) Result {
	opID := uuid.New().String()
	logger := s.logger.With(zap.String("operation_id", opID))
	timer := metrics.NewTimer()

	usage, consumed := s.aggregator.Aggregate(pairs)

	execution := s.executor.Execute(ctx, usage)

	partSummary := make([]PartConsumption, 0, len(usage))
	for partID, amount := range usage {
		partSummary = append(partSummary, PartConsumption{PartID: partID, Consumed: amount})
	}
	sort.Slice(partSummary, func(i, j int) bool {
		return partSummary[i].PartID < partSummary[j].PartID
	})
	sort.Ints(execution.FailedPartIDs)

	status := "ok"
	if !execution.AllProcessed {
		status = "partial"
	}
	metrics.RecordConsumption(status, timer.Stop())

	logger.Info("Consumption operation completed",
		zap.Int("pairs", len(pairs)),
		zap.Int("pairs_consumed", len(consumed)),
		zap.Int("parts", len(partSummary)),
		zap.Int("failed_parts", len(execution.FailedPartIDs)),
		zap.String("status", status))

	return Result{
		PCBSummary:    consumed,
		PartSummary:   partSummary,
		FailedPartIDs: execution.FailedPartIDs,
		AllProcessed:  execution.AllProcessed,
	}
}

// Summarize exposes the production summarizer for callers that only need
// counts, without touching inventory.
func (s *Service) Summarize(records []production.ImageRecord) []production.BatchSummary {
	return s.summarizer.Summarize(records)
}
