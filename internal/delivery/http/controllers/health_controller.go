package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"

	"eventticketing/internal/delivery/http/helpers"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	Logger *slog.Logger
	Checks map[string]HealthCheck
}

func NewHealthController(logger *slog.Logger, checks map[string]HealthCheck) *HealthController {
	return &HealthController{
		Logger: logger,
		Checks: checks,
	}
}

// HealthResponse is the data payload for GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health godoc
// @Summary Liveness and dependency check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Failure 503 {object} helpers.APIResponse "data.status: degraded"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(c.Checks))}
	names := make([]string, 0, len(c.Checks))
	for name := range c.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.Checks[name](r.Context()); err != nil {
			c.Logger.WarnContext(r.Context(), "health check failed", "check", name, "err", err)
			resp.Status = "degraded"
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = "ok"
	}
	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	helpers.WriteJSONSuccess(w, status, resp)
}
