package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/cache"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	pingDB Pinger
	cache  cache.Cache
}

func NewHealthHandler(pingDB Pinger, c cache.Cache) *HealthHandler {
	return &HealthHandler{pingDB: pingDB, cache: c}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Success:   true,
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
		Cache:     "ok",
	}

	if err := h.pingDB(ctx); err != nil {
		resp.Success = false
		resp.Status = "degraded"
		resp.DB = "unhealthy: " + err.Error()
	}

	switch h.cache.(type) {
	case nil, cache.Noop:
		resp.Cache = "disabled"
	default:
		if err := h.cache.Ping(ctx); err != nil {
			resp.Cache = "unhealthy: " + err.Error()
		}
	}

	if !resp.Success {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
