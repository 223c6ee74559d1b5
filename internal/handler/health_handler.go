package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"famledger/internal/cache"
)

// HealthHandler reports liveness and dependency status.
type HealthHandler struct {
	db    *gorm.DB
	cache *cache.Client
}

// NewHealthHandler creates a new health handler. The cache may be nil.
func NewHealthHandler(db *gorm.DB, cache *cache.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// DependencyHealth is the status of one backing service.
type DependencyHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// HealthResponse is the health report.
type HealthResponse struct {
	Status   string           `json:"status"`
	Database DependencyHealth `json:"database"`
	Cache    DependencyHealth `json:"cache"`
}

func probe(ctx context.Context, ping func(context.Context) error) DependencyHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return DependencyHealth{Status: "unhealthy", ResponseTime: elapsed}
	}
	return DependencyHealth{Status: "healthy", ResponseTime: elapsed}
}

// Health godoc
// @Summary Health check
// @Description The database decides overall health; the cache is reported but optional.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()

	resp := HealthResponse{
		Status: "healthy",
		Database: probe(ctx, func(ctx context.Context) error {
			sqlDB, err := h.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		Cache: probe(ctx, h.cache.Ping),
	}

	status := http.StatusOK
	if resp.Database.Status != "healthy" {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, resp)
}
