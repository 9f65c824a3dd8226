package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	pings []func(ctx context.Context) error
}

// NewHealthHandler takes the readiness pings (SMTP verify, dedup store) to
// run on /readyz. Liveness stays unconditional.
func NewHealthHandler(pings ...func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{pings: pings}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	for _, ping := range h.pings {
		if ping == nil {
			continue
		}

		if err := ping(cctx); err != nil {
			ctx.JSON(503, gin.H{"status": "not ready", "reason": err.Error()})
			return
		}
	}

	ctx.JSON(200, gin.H{"status": "ready"})
}
