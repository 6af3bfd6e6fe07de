package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-service/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	db    *persistence.Postgres
	cache *persistence.Redis
}

// NewHealthHandler constructs handler.
func NewHealthHandler(db *persistence.Postgres, cache *persistence.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready. Postgres is required; redis is a cache
// and only degrades the report.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{"postgres": "ok", "redis": "ok"}
	status := http.StatusOK

	if err := h.db.Ping(c.Context()); err != nil {
		checks["postgres"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := h.cache.Ping(c.Context()); err != nil {
		checks["redis"] = "degraded: " + err.Error()
	}

	return c.Status(status).JSON(fiber.Map{"status": checks})
}
