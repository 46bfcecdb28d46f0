// Package forecast validates, submits and reshapes demand-prediction
// requests against the external prediction service.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/circuitops/boardtrack/internal/metrics"
)

// Warning levels for forecast result items.
const (
	WarningLow    = "low"
	WarningMedium = "medium"
	WarningHigh   = "high"
)

// Request is a caller-owned demand forecast request.
type Request struct {
	Years             []int   `json:"years"`
	ServiceDays       int     `json:"service_days"`
	PackSize          int     `json:"pack_size"`
	MOQ               int     `json:"moq"`
	HoldingRatePerDay float64 `json:"holding_rate_per_day"`
	PenaltyMultiplier float64 `json:"penalty_multiplier"`
}

// Options shape the result list after transformation.
type Options struct {
	Limit       int  `json:"limit"`
	WarningOnly bool `json:"warning_only"`
}

// ResultItem is one classified forecast line.
type ResultItem struct {
	PartID           int     `json:"partId"`
	PartNumber       string  `json:"partNumber"`
	PredictedDemand  float64 `json:"predictedDemand"`
	CurrentStock     float64 `json:"currentStock"`
	RecommendedOrder float64 `json:"recommendedOrder"`
	Confidence       float64 `json:"confidence"`
	WarningLevel     string  `json:"warningLevel"`
	Details          string  `json:"details,omitempty"`
}

// ModelMeta describes the deployed prediction model.
type ModelMeta struct {
	Version   string  `json:"version"`
	Accuracy  float64 `json:"accuracy"`
	TrainedAt string  `json:"trained_at"`
}

// Gateway is the client-side pipeline in front of the prediction service:
// validate, submit, transform, classify and filter. It never retries and has
// no internal concurrency.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGateway(baseURL string, timeout time.Duration, logger *zap.Logger) *Gateway {
	return &Gateway{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Validate checks the request without touching the transport.
func (g *Gateway) Validate(req Request) error {
	if len(req.Years) == 0 {
		return &ValidationError{Field: "years", Reason: "must not be empty"}
	}
	if req.ServiceDays <= 0 {
		return &ValidationError{Field: "service_days", Reason: "must be positive"}
	}
	if req.PackSize <= 0 {
		return &ValidationError{Field: "pack_size", Reason: "must be positive"}
	}
	if req.HoldingRatePerDay < 0 {
		return &ValidationError{Field: "holding_rate_per_day", Reason: "must not be negative"}
	}
	if req.PenaltyMultiplier < 0 {
		return &ValidationError{Field: "penalty_multiplier", Reason: "must not be negative"}
	}
	return nil
}

// predictPayload is the wire shape sent to the prediction endpoint.
type predictPayload struct {
	Request
	Options Options `json:"options"`
}

// rawPrediction is the tolerant wire shape of one upstream prediction.
// Pointer fields distinguish absent from zero so defaults can be applied.
type rawPrediction struct {
	PartID           *int     `json:"part_id"`
	PartNumber       string   `json:"part_number"`
	PredictedDemand  *float64 `json:"predicted_demand"`
	CurrentStock     *float64 `json:"current_stock"`
	RecommendedOrder *float64 `json:"recommended_order"`
	Confidence       *float64 `json:"confidence"`
	Details          string   `json:"details"`
}

type predictResponse struct {
	Predictions *[]rawPrediction `json:"predictions"`
}

// Forecast runs the full pipeline and returns the classified, shaped result
// list. Validation, transport and response-shape failures abort the whole
// call; there are no partial forecast results.
func (g *Gateway) Forecast(ctx context.Context, req Request, opts Options) ([]ResultItem, error) {
	if err := g.Validate(req); err != nil {
		return nil, err
	}

	raw, err := g.submit(ctx, req, opts)
	if err != nil {
		return nil, err
	}

	items := transform(raw)
	for i := range items {
		items[i].WarningLevel = classify(items[i].CurrentStock, items[i].PredictedDemand, items[i].Confidence)
	}

	items = shape(items, opts)

	g.logger.Info("Forecast completed",
		zap.Int("items", len(items)),
		zap.Int("limit", opts.Limit),
		zap.Bool("warning_only", opts.WarningOnly))

	return items, nil
}

func (g *Gateway) submit(ctx context.Context, req Request, opts Options) ([]rawPrediction, error) {
	body, err := json.Marshal(predictPayload{Request: req, Options: opts})
	if err != nil {
		return nil, fmt.Errorf("failed to encode forecast request: %w", err)
	}

	timer := metrics.NewTimer()
	resp, err := g.post(ctx, "/predict", body)
	if err != nil {
		metrics.RecordForecastCall("predict", "error", timer.Stop())
		return nil, fmt.Errorf("failed to call prediction service: %w", err)
	}
	defer resp.Body.Close()

	metrics.RecordForecastCall("predict", strconv.Itoa(resp.StatusCode), timer.Stop())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.logger.Warn("Prediction service rejected request",
			zap.Int("status", resp.StatusCode))
		return nil, &GatewayError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &MalformedResponseError{Reason: "body is not valid JSON"}
	}
	if decoded.Predictions == nil {
		return nil, &MalformedResponseError{Reason: "missing predictions field"}
	}

	return *decoded.Predictions, nil
}

// transform coerces each raw prediction to safe defaults: a missing part_id
// becomes the 1-based position, missing numeric fields become 0, and
// confidence is clamped to [0,1]. Upstream order is preserved.
func transform(raw []rawPrediction) []ResultItem {
	items := make([]ResultItem, 0, len(raw))
	for i, p := range raw {
		item := ResultItem{
			PartID:           i + 1,
			PartNumber:       p.PartNumber,
			PredictedDemand:  floatOrZero(p.PredictedDemand),
			CurrentStock:     floatOrZero(p.CurrentStock),
			RecommendedOrder: floatOrZero(p.RecommendedOrder),
			Confidence:       clamp01(floatOrZero(p.Confidence)),
			Details:          p.Details,
		}
		if p.PartID != nil {
			item.PartID = *p.PartID
		}
		items = append(items, item)
	}
	return items
}

// classify assigns the three-tier warning level from the stock-to-demand
// ratio and the model confidence.
func classify(stock, demand, confidence float64) string {
	ratio := stock / max(demand, 1)
	switch {
	case ratio < 0.2 && confidence > 0.8:
		return WarningHigh
	case ratio < 0.5:
		return WarningMedium
	default:
		return WarningLow
	}
}

// shape truncates to the caller's limit, then applies the warning-only
// filter. No re-sorting.
func shape(items []ResultItem, opts Options) []ResultItem {
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	if !opts.WarningOnly {
		return items
	}
	filtered := make([]ResultItem, 0, len(items))
	for _, item := range items {
		if item.WarningLevel != WarningLow {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Healthy reports whether the prediction service answers its health probe.
// Transport failures degrade to false rather than an error so availability
// polling never throws into the caller.
func (g *Gateway) Healthy(ctx context.Context) bool {
	timer := metrics.NewTimer()
	resp, err := g.get(ctx, "/health")
	if err != nil {
		metrics.RecordForecastCall("health", "error", timer.Stop())
		g.logger.Warn("Prediction service health probe failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	metrics.RecordForecastCall("health", strconv.Itoa(resp.StatusCode), timer.Stop())

	return resp.StatusCode == http.StatusOK
}

// Meta fetches the deployed model's version and accuracy.
func (g *Gateway) Meta(ctx context.Context) (*ModelMeta, error) {
	timer := metrics.NewTimer()
	resp, err := g.get(ctx, "/model/meta")
	if err != nil {
		metrics.RecordForecastCall("model_meta", "error", timer.Stop())
		return nil, fmt.Errorf("failed to fetch model metadata: %w", err)
	}
	defer resp.Body.Close()
	metrics.RecordForecastCall("model_meta", strconv.Itoa(resp.StatusCode), timer.Stop())

	if resp.StatusCode != http.StatusOK {
		return nil, &GatewayError{Status: resp.StatusCode}
	}

	var meta ModelMeta
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, &MalformedResponseError{Reason: "model metadata is not valid JSON"}
	}
	return &meta, nil
}

func (g *Gateway) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return g.httpClient.Do(httpReq)
}

func (g *Gateway) get(ctx context.Context, path string) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return g.httpClient.Do(httpReq)
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
