package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kolo-pohody/backend/internal/service"
	"github.com/kolo-pohody/backend/internal/types"
)

// JournalHandler serves journal CRUD, search and aggregation endpoints.
type JournalHandler struct {
	journalService service.IJournalService
}

func NewJournalHandler(journalService service.IJournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// RegisterRoutes registers journal routes on an authenticated group.
func (h *JournalHandler) RegisterRoutes(router *gin.RouterGroup) {
	journal := router.Group("/journal")
	{
		journal.GET("", h.List)
		journal.POST("", h.Create)
		journal.GET("/today", h.Today)
		journal.GET("/stats", h.Stats)
		journal.GET("/tags", h.Tags)
		journal.GET("/:id", h.Get)
		journal.PUT("/:id", h.Update)
		journal.DELETE("/:id", h.Delete)
		journal.PUT("/:id/privacy", h.SetPrivacy)
	}
}

func (h *JournalHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	entry, err := h.journalService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *JournalHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	entry, err := h.journalService.Get(c.Request.Context(), userID, entryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *JournalHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req types.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry, err := h.journalService.Update(c.Request.Context(), userID, entryID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *JournalHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.journalService.Delete(c.Request.Context(), userID, entryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JournalHandler) SetPrivacy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req types.PrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPrivate == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_private is required"})
		return
	}
	entry, err := h.journalService.SetPrivacy(c.Request.Context(), userID, entryID, *req.IsPrivate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *JournalHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := service.JournalFilter{
		Search: c.Query("search"),
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
	if raw := c.Query("include_private"); raw != "" {
		includePrivate, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "include_private must be a boolean"})
			return
		}
		filter.IncludePrivate = includePrivate
	} else {
		filter.IncludePrivate = true
	}

	entries, err := h.journalService.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *JournalHandler) Today(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.journalService.TodayEntries(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *JournalHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	// days=0 is a valid zero-length window (average reported as 0)
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = parsed
	}
	stats, err := h.journalService.Stats(c.Request.Context(), userID, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *JournalHandler) Tags(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tags, err := h.journalService.Tags(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
