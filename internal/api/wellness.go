package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kolo-pohody/backend/internal/service"
	"github.com/kolo-pohody/backend/internal/types"
)

// WellnessHandler serves category, entry and statistics endpoints.
type WellnessHandler struct {
	wellnessService service.IWellnessService
}

func NewWellnessHandler(wellnessService service.IWellnessService) *WellnessHandler {
	return &WellnessHandler{wellnessService: wellnessService}
}

// RegisterRoutes registers wellness routes on an authenticated group.
func (h *WellnessHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
	entries := router.Group("/entries")
	{
		entries.GET("", h.ListEntries)
		entries.POST("", h.UpsertEntry)
		entries.GET("/today", h.Today)
		entries.PUT("/:id", h.UpdateEntry)
		entries.DELETE("/:id", h.DeleteEntry)
	}
	router.GET("/stats", h.Stats)
}

func (h *WellnessHandler) ListCategories(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	categories, err := h.wellnessService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *WellnessHandler) CreateCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	category, err := h.wellnessService.CreateCategory(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *WellnessHandler) UpdateCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req types.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	category, err := h.wellnessService.UpdateCategory(c.Request.Context(), userID, categoryID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *WellnessHandler) DeleteCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.wellnessService.DeleteCategory(c.Request.Context(), userID, categoryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WellnessHandler) UpsertEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.UpsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id, score and entry_date are required"})
		return
	}
	entry, created, err := h.wellnessService.UpsertEntry(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, entry)
}

func (h *WellnessHandler) UpdateEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req types.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry, err := h.wellnessService.UpdateEntry(c.Request.Context(), userID, entryID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *WellnessHandler) DeleteEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.wellnessService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WellnessHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := service.EntryFilter{}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		filter.CategoryID = &categoryID
	}
	var ok2 bool
	if filter.StartDate, ok2 = parseDateQuery(c, "start_date"); !ok2 {
		return
	}
	if filter.EndDate, ok2 = parseDateQuery(c, "end_date"); !ok2 {
		return
	}
	if filter.Limit, ok2 = parseIntQuery(c, "limit"); !ok2 {
		return
	}

	entries, err := h.wellnessService.ListEntries(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *WellnessHandler) Today(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	snapshot, err := h.wellnessService.TodaySnapshot(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *WellnessHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		categoryID = &parsed
	}

	stats, err := h.wellnessService.Stats(c.Request.Context(), userID, days, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter. The bool is
// false when the request has already been answered with a 400.
func parseDateQuery(c *gin.Context, name string) (*types.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	date, err := types.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " format, expected YYYY-MM-DD"})
		return nil, false
	}
	return &date, true
}

// parseIntQuery parses an optional positive integer query parameter.
func parseIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return value, true
}
