package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kolo-pohody/backend/internal/service"
	"github.com/kolo-pohody/backend/internal/types"
)

// InspirationHandler serves AI inspiration endpoints.
type InspirationHandler struct {
	inspirationService service.IInspirationService
}

func NewInspirationHandler(inspirationService service.IInspirationService) *InspirationHandler {
	return &InspirationHandler{inspirationService: inspirationService}
}

// RegisterRoutes registers inspiration routes on an authenticated group.
func (h *InspirationHandler) RegisterRoutes(router *gin.RouterGroup) {
	inspiration := router.Group("/inspiration")
	{
		inspiration.GET("/daily", h.Daily)
		inspiration.POST("/generate", h.Generate)
		inspiration.GET("/history", h.History)
		inspiration.DELETE("/:id", h.Delete)
	}
}

// Daily returns today's inspiration, generating it on first call. The
// is_cached flag tells the client whether it saw a fresh generation.
func (h *InspirationHandler) Daily(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	inspiration, cached, err := h.inspirationService.Daily(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           inspiration.ID,
		"type":         inspiration.InspirationType,
		"content":      inspiration.Content,
		"created_date": inspiration.CreatedDate,
		"is_cached":    cached,
	})
}

func (h *InspirationHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.GenerateInspirationRequest
	// body is optional; an absent type means daily_quote
	_ = c.ShouldBindJSON(&req)

	inspiration, err := h.inspirationService.Generate(c.Request.Context(), userID, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inspiration)
}

func (h *InspirationHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, ok := parseIntQuery(c, "limit")
	if !ok {
		return
	}
	inspirations, err := h.inspirationService.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inspirations)
}

func (h *InspirationHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	inspirationID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.inspirationService.Delete(c.Request.Context(), userID, inspirationID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
