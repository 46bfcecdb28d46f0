// Package consumption expands produced-board counts into part usage and
// applies the usage against the shared inventory store.
package consumption

import (
	"go.uber.org/zap"

	"github.com/circuitops/boardtrack/internal/bom"
	"github.com/circuitops/boardtrack/internal/metrics"
)

// BoardUsage is one (board type, produced count) pair submitted for
// consumption.
type BoardUsage struct {
	BoardType string `json:"boardType"`
	Count     int    `json:"count"`
}

// PartUsageMap accumulates the total decrement amount per part for one
// consumption operation. It is built fresh per call and never shared.
type PartUsageMap map[int]float64

// Aggregator expands board usage pairs through the BOM table.
type Aggregator struct {
	logger *zap.Logger
}

func NewAggregator(logger *zap.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Aggregate builds the consolidated part usage map for the given pairs and
// echoes the pairs that actually contributed. A pair with a non-positive
// count or an unresolved board type is skipped whole; one bad entry never
// aborts the batch, and a skipped pair contributes nothing to any part.
func (a *Aggregator) Aggregate(pairs []BoardUsage) (PartUsageMap, []BoardUsage) {
	total := make(PartUsageMap)
	consumed := make([]BoardUsage, 0, len(pairs))

	for _, pair := range pairs {
		if pair.Count <= 0 {
			a.logger.Warn("Skipping board usage with non-positive count",
				zap.String("board_type", pair.BoardType),
				zap.Int("count", pair.Count))
			metrics.RecordSkip("non_positive_count")
			continue
		}

		entries, ok := bom.Resolve(pair.BoardType)
		if !ok {
			a.logger.Warn("Skipping board type with no BOM mapping",
				zap.String("board_type", pair.BoardType))
			metrics.RecordSkip("unresolved_board_type")
			continue
		}

		usage := make(PartUsageMap, len(entries))
		for _, entry := range entries {
			amount := entry.UnitAmount * float64(pair.Count)
			usage[entry.PartID] += amount
			total[entry.PartID] += amount
		}

		a.logger.Debug("Expanded board usage",
			zap.String("board_type", pair.BoardType),
			zap.Int("count", pair.Count),
			zap.Int("parts", len(usage)))

		consumed = append(consumed, pair)
	}

	return total, consumed
}
