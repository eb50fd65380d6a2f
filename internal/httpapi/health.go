package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	ready func(ctx context.Context) error
}

// NewHealthHandler takes an optional readiness probe.
func NewHealthHandler(ready func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ready: ready}
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			c.String(http.StatusServiceUnavailable, "not ready: "+err.Error())
			return
		}
	}
	c.String(http.StatusOK, "ready")
}
