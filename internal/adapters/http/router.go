// Package httpadapter exposes the assistant over HTTP: the describe flow on
// /v1/generate, the registry chatbot on /v1/chat, and the operational
// endpoints around them.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/datakota/usaha-assistant/internal/core/domain"
	"github.com/datakota/usaha-assistant/internal/core/ports"
	"github.com/datakota/usaha-assistant/internal/observability/metrics"
)

type Options struct {
	ServiceName    string
	InternalAPIKey string

	RateLimitRPS   int
	RateLimitBurst int
	MaxConcurrent  int
}

type Router struct {
	chatUC     ports.ChatService
	describeUC ports.DescribeService
	registry   ports.BusinessRegistry
	metrics    *metrics.HTTPServerMetrics
	opts       Options
}

func NewRouter(
	chatUC ports.ChatService,
	describeUC ports.DescribeService,
	registry ports.BusinessRegistry,
	m *metrics.HTTPServerMetrics,
	opts Options,
) *Router {
	if opts.ServiceName == "" {
		opts.ServiceName = "api"
	}
	return &Router{
		chatUC:     chatUC,
		describeUC: describeUC,
		registry:   registry,
		metrics:    m,
		opts:       opts,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/generate", rt.generate)
	mux.HandleFunc("/v1/chat", rt.chat)
	mux.HandleFunc("/v1/chat/samples", rt.chatSamples)
	mux.HandleFunc("/internal/stats", rt.internalStats)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	handler := http.Handler(mux)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.opts.ServiceName, handler)
	}
	handler = backpressureMiddleware(handler, rt.opts.MaxConcurrent, 100*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.opts.RateLimitRPS, rt.opts.RateLimitBurst)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type generateRequest struct {
	Name      string `json:"nama_tempat"`
	Category  string `json:"kategori"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type generateResponse struct {
	Input       generateInput        `json:"input"`
	Geocode     domain.GeocodeDetail `json:"geocode"`
	Narrative   string               `json:"lokasi_naratif"`
	Description string               `json:"deskripsi"`
}

type generateInput struct {
	Name      string  `json:"nama_tempat"`
	Category  string  `json:"kategori"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (rt *Router) generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if req.Name == "" || req.Category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "nama_tempat dan kategori wajib diisi"})
		return
	}

	lat, err := parseCoordinate(req.Latitude, 90)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "latitude tidak valid"})
		return
	}
	lon, err := parseCoordinate(req.Longitude, 180)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "longitude tidak valid"})
		return
	}

	desc, err := rt.describeUC.Describe(r.Context(), req.Name, req.Category, lat, lon)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": "gagal membuat deskripsi"})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordDescribe(rt.opts.ServiceName, desc.Degraded, desc.GeocodeFail)
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Input: generateInput{
			Name:      req.Name,
			Category:  req.Category,
			Latitude:  lat,
			Longitude: lon,
		},
		Geocode:     desc.Geocode,
		Narrative:   desc.Narrative,
		Description: desc.Text,
	})
}

// parseCoordinate accepts decimal-comma input; registry exports and
// Indonesian locale spreadsheets commonly use it.
func parseCoordinate(raw string, bound float64) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, err
	}
	if value < -bound || value > bound {
		return 0, strconv.ErrRange
	}
	return value, nil
}

type chatRequest struct {
	Message string `json:"message"`
}

func (rt *Router) chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	result := rt.chatUC.Chat(r.Context(), req.Message)

	if rt.metrics != nil {
		rt.metrics.RecordChatMessage(rt.opts.ServiceName, result.MessageType)
	}

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) chatSamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"samples": rt.chatUC.SampleQuestions(),
	})
}

func (rt *Router) internalStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.opts.InternalAPIKey == "" || r.Header.Get("X-Internal-Key") != rt.opts.InternalAPIKey {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid internal API key"})
		return
	}

	count, err := rt.registry.CountAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registry unavailable"})
		return
	}

	resp := map[string]any{
		"success":          true,
		"total_businesses": count,
	}

	// ?recent=N appends the newest registry rows for spot checks.
	if raw := r.URL.Query().Get("recent"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > 100 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "recent must be 1..100"})
			return
		}
		recent, err := rt.registry.List(r.Context(), domain.CountFilter{}, limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registry unavailable"})
			return
		}
		resp["recent"] = recent
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
