package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/group-study-api/internal/service"
	appErrors "github.com/noah-isme/group-study-api/pkg/errors"
	"github.com/noah-isme/group-study-api/pkg/response"
)

// Pinger checks that a backing store is reachable.
type Pinger func(ctx context.Context) error

// HealthHandler exposes liveness, readiness and metrics endpoints.
type HealthHandler struct {
	metrics *service.MetricsService
	ping    Pinger
}

// NewHealthHandler constructs a health handler. A nil pinger reports ready.
func NewHealthHandler(metrics *service.MetricsService, ping Pinger) *HealthHandler {
	return &HealthHandler{metrics: metrics, ping: ping}
}

// Root answers the bare liveness probe used by the hosting platform.
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "group study server is running")
}

// Health responds with a generic OK payload for liveness usage.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the document store answers a ping.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "document store unreachable"))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *HealthHandler) Prometheus(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
