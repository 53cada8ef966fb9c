package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/author-clock/internal/cache"
	"github.com/localnerve/author-clock/internal/config"
	"github.com/localnerve/author-clock/internal/services"
	"github.com/localnerve/author-clock/internal/utils"
	"gorm.io/gorm"
)

// HealthHandler handles liveness and index routes
type HealthHandler struct {
	Cfg   *config.Config
	DB    *gorm.DB
	Store cache.Store
}

// GetHealth handles GET /api/health
// @Summary Service health
// @Description Ping the database and cache, returning 503 when either is down
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB, h.Store)

	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"success": result.Status == "healthy",
		"data":    result,
	})
}

// GetIndex handles GET /api
// @Summary API index
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router / [get]
func (h *HealthHandler) GetIndex(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.Map{
		"name":    "author-clock API",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"quotes":    "/api/quotes",
			"session":   "/api/session",
			"bookmarks": "/api/bookmarks",
			"seo":       "/api/seo",
			"health":    "/api/health",
		},
	})
}
