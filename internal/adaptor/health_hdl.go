package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"
)

const (
	statusUp   = "UP"
	statusDown = "DOWN"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck pings one dependency
type HealthCheck func(ctx context.Context) error

type healthComponent struct {
	Status string `json:"status"`
}

type healthBody struct {
	Status     string                     `json:"status"`
	Components map[string]healthComponent `json:"components,omitempty"`
}

// HealthHandler serves GET /actuator/health
type HealthHandler struct {
	checks map[string]HealthCheck
	log    *zap.Logger
}

func NewHealthHandler(checks map[string]HealthCheck, log *zap.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, log: log}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	body := healthBody{Status: statusUp}
	if len(names) > 0 {
		body.Components = make(map[string]healthComponent, len(names))
	}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.log.Warn("Health check failed", zap.String("component", name), zap.Error(err))
			body.Status = statusDown
			body.Components[name] = healthComponent{Status: statusDown}
			continue
		}
		body.Components[name] = healthComponent{Status: statusUp}
	}

	code := http.StatusOK
	if body.Status == statusDown {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
