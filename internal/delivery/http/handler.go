package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kassaklap/backend/internal/domain"
)

// SearchService is what the handler needs from the orchestrator.
type SearchService interface {
	Search(ctx context.Context, query string) ([]domain.ResultItem, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search SearchService
}

// NewHandler creates a new HTTP handler
func NewHandler(search SearchService) *Handler {
	return &Handler{search: search}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "kassaklap-backend",
		"version": "1.0.0",
	})
}

// Search handles product search requests. A missing or blank "q"
// parameter is a client error; any valid query returns a JSON array,
// possibly empty.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": `Query parameter "q" is required`,
		})
		return
	}

	items, err := h.search.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": `Query parameter "q" is required`,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "internal server error",
		})
		return
	}

	if items == nil {
		items = []domain.ResultItem{}
	}
	c.JSON(http.StatusOK, items)
}
