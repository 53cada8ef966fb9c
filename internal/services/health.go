package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/localnerve/author-clock/internal/cache"
	"github.com/localnerve/author-clock/internal/config"
	"github.com/localnerve/author-clock/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Cache        string            `json:"cache"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB, store cache.Store) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check cache connectivity
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		result.Status = "unhealthy"
		result.Cache = "unreachable"
		result.Details["cache_error"] = err.Error()
		// Distinguish a dead host from a live port with a protocol problem
		if tcpErr := utils.PingHostPort(cfg.RedisAddr, 2*time.Second); tcpErr != nil {
			result.Details["cache_tcp_error"] = tcpErr.Error()
		} else {
			result.Details["cache_tcp"] = "reachable"
		}
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Cache ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; Cache ping failed: %v", err)
		}
		log.Printf("Health check failed - cache ping: %v", err)
	} else {
		result.Cache = "ok"
		result.Details["cache_addr"] = cfg.RedisAddr
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
