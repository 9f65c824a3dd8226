package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lagosinph/ticketstore/internal/domain/ticket"
)

type TicketsHandler struct{}

func NewTicketsHandler() *TicketsHandler {
	return &TicketsHandler{}
}

// ListCategories feeds the storefront's ticket selector.
func (h *TicketsHandler) ListCategories(ctx *gin.Context) {
	cats := ticket.Catalog()

	ctx.JSON(http.StatusOK, gin.H{
		"count":      len(cats),
		"categories": cats,
	})
}
