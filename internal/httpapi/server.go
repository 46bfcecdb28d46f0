// Package httpapi exposes the consumption and forecast operations over a
// thin JSON surface.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/circuitops/boardtrack/internal/consumption"
	"github.com/circuitops/boardtrack/internal/forecast"
	"github.com/circuitops/boardtrack/internal/production"
)

// ImageLister is the image-hosting collaborator boundary.
type ImageLister interface {
	ListImages(ctx context.Context) ([]production.ImageRecord, error)
}

type Server struct {
	service *consumption.Service
	gateway *forecast.Gateway
	lister  ImageLister
	logger  *zap.Logger
}

func NewServer(service *consumption.Service, gateway *forecast.Gateway, lister ImageLister, logger *zap.Logger) *Server {
	return &Server{
		service: service,
		gateway: gateway,
		lister:  lister,
		logger:  logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/consumption", s.handleConsumption)
	mux.HandleFunc("POST /v1/forecast", s.handleForecast)
	mux.HandleFunc("GET /v1/production/summary", s.handleProductionSummary)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

type consumptionRequest struct {
	// Exactly one of the two inputs is used; Boards wins when both are set.
	Boards []consumption.BoardUsage `json:"boards,omitempty"`
	Images []production.ImageRecord `json:"images,omitempty"`
}

type consumptionResponse struct {
	Status string `json:"status"`
	consumption.Result
}

// handleConsumption always answers 200; partial failure is reported in the
// status field so the caller can react per part.
func (s *Server) handleConsumption(w http.ResponseWriter, r *http.Request) {
	var req consumptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var result consumption.Result
	if len(req.Boards) > 0 {
		result = s.service.Consume(r.Context(), req.Boards)
	} else {
		result = s.service.ConsumeFromImages(r.Context(), req.Images)
	}

	status := "ok"
	if !result.AllProcessed {
		status = "partial"
	}

	writeJSON(w, http.StatusOK, consumptionResponse{Status: status, Result: result})
}

type forecastRequest struct {
	forecast.Request
	Options forecast.Options `json:"options"`
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	var req forecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := s.gateway.Forecast(r.Context(), req.Request, req.Options)
	if err != nil {
		s.writeForecastError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) writeForecastError(w http.ResponseWriter, err error) {
	var validationErr *forecast.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	var gatewayErr *forecast.GatewayError
	var malformedErr *forecast.MalformedResponseError
	if errors.As(err, &gatewayErr) || errors.As(err, &malformedErr) {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.logger.Error("Forecast failed", zap.Error(err))
	writeError(w, http.StatusBadGateway, "prediction service unavailable")
}

func (s *Server) handleProductionSummary(w http.ResponseWriter, r *http.Request) {
	records, err := s.lister.ListImages(r.Context())
	if err != nil {
		s.logger.Error("Failed to list inspection images", zap.Error(err))
		writeError(w, http.StatusBadGateway, "image listing unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"summaries": s.service.Summarize(records)})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"forecast_service": s.gateway.Healthy(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
