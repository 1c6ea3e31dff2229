package handlers

import (
	"edcall/internal/repositories"
	"edcall/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports the status of the database and cache connections.
func HealthCheck(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "ok",
		"database": "ok",
		"cache":    "ok",
	}
	healthy := true

	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status["database"] = "unreachable"
		healthy = false
	}

	if repositories.CacheService == nil || repositories.CacheService.HealthCheck(c.Context()) != nil {
		status["cache"] = "unreachable"
		healthy = false
	}

	if !healthy {
		status["status"] = "degraded"
		return utils.Respond(c, fiber.StatusServiceUnavailable, status)
	}
	return utils.Success(c, status)
}
