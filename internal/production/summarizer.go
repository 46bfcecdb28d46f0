// Package production derives per-board-type production counts from raw
// inspection image listings.
package production

import (
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/circuitops/boardtrack/internal/boardtype"
	"github.com/circuitops/boardtrack/internal/metrics"
)

// ImageRecord is one entry from the inspection image listing.
type ImageRecord struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// BatchSummary aggregates the inspection images for one board-type code.
type BatchSummary struct {
	BoardTypeCode   int            `json:"boardTypeCode"`
	ProducedCount   int            `json:"producedCount"`
	ManufactureDate string         `json:"manufactureDate"`
	ImageURLs       []string       `json:"imageUrls"`
	Board           boardtype.Info `json:"board"`
}

// Image names encode a manufacture date, an inspection tag and the numeric
// board-type code: .../2024-05-01/OK_11_0007.jpg
var imageNamePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})/([A-Za-z]+)_(\d+)_`)

// unknownBoardCode is the sentinel emitted by the vision classifier when it
// could not identify the board; such images carry no production signal.
const unknownBoardCode = 0

// Summarizer turns flat image listings into per-board-type production batches.
type Summarizer struct {
	logger *zap.Logger
}

func NewSummarizer(logger *zap.Logger) *Summarizer {
	return &Summarizer{logger: logger}
}

// Summarize groups the given image records by board-type code. Records whose
// name does not match the pattern, or whose code is the unknown sentinel, are
// excluded. The manufacture date of a batch is taken from the first matching
// image for its code; batches are assumed same-day, so later dates are not
// consulted. Output order is first-seen-code order. Pure function of its
// input: no I/O, no retained state.
func (s *Summarizer) Summarize(records []ImageRecord) []BatchSummary {
	byCode := make(map[int]*BatchSummary)
	var order []int

	for _, rec := range records {
		m := imageNamePattern.FindStringSubmatch(rec.Name)
		if m == nil {
			s.logger.Debug("Skipping unparseable image name", zap.String("name", rec.Name))
			metrics.RecordSkip("unparseable_image_name")
			continue
		}

		code, err := strconv.Atoi(m[3])
		if err != nil || code == unknownBoardCode {
			s.logger.Debug("Skipping image with unknown board code", zap.String("name", rec.Name))
			metrics.RecordSkip("unknown_board_code")
			continue
		}

		batch, ok := byCode[code]
		if !ok {
			batch = &BatchSummary{
				BoardTypeCode:   code,
				ManufactureDate: m[1],
				Board:           boardtype.Resolve(code),
			}
			byCode[code] = batch
			order = append(order, code)
		}

		batch.ProducedCount++
		batch.ImageURLs = append(batch.ImageURLs, rec.URL)
	}

	summaries := make([]BatchSummary, 0, len(order))
	for _, code := range order {
		batch := byCode[code]
		metrics.BoardsSummarized.WithLabelValues(batch.Board.Name).Add(float64(batch.ProducedCount))
		summaries = append(summaries, *batch)
	}

	s.logger.Info("Summarized inspection images",
		zap.Int("images", len(records)),
		zap.Int("board_types", len(summaries)))

	return summaries
}
