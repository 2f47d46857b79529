package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck checks one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler godoc
// @Summary Health check
// @Description Pings the database and, when configured, Redis
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func HealthHandler(checks ...HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
		defer cancel()

		resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				resp.Status = "degraded"
				resp.Checks[hc.Name] = err.Error()
				continue
			}
			resp.Checks[hc.Name] = "ok"
		}

		if resp.Status != "ok" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
		return c.JSON(resp)
	}
}
