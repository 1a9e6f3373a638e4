package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolo-pohody/backend/internal/models"
	"github.com/kolo-pohody/backend/internal/service"
)

func TestJournalCreateEndpoint(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUser(t, env, "jc@example.com")

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/journal", token, map[string]interface{}{
		"title":   "První zápis",
		"content": "Dnes byl dobrý den.",
		"tags":    []string{"ráno", "vděčnost"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var entry models.JournalEntry
	DecodeBody(t, w, &entry)
	assert.Equal(t, "První zápis", entry.Title)
	assert.True(t, entry.IsPrivate)
	tags, _ := entry.Tags.List()
	assert.Equal(t, []string{"ráno", "vděčnost"}, tags)

	// missing content fails binding
	w = PerformRequest(env.Router, http.MethodPost, "/api/v1/journal", token, map[string]interface{}{
		"title": "Bez obsahu",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// non-list tags are coerced to an empty list, not rejected
	w = PerformRequest(env.Router, http.MethodPost, "/api/v1/journal", token, map[string]interface{}{
		"content": "obsah",
		"tags":    "ráno",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	DecodeBody(t, w, &entry)
	tags, _ = entry.Tags.List()
	assert.Empty(t, tags)
}

func TestJournalGetUpdateDeleteEndpoints(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUser(t, env, "jg@example.com")

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/journal", token, map[string]interface{}{
		"content": "původní obsah",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var entry models.JournalEntry
	DecodeBody(t, w, &entry)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal/"+entry.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = PerformRequest(env.Router, http.MethodPut, "/api/v1/journal/"+entry.ID.String(), token, map[string]interface{}{
		"title": "Doplněný titulek",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.JournalEntry
	DecodeBody(t, w, &updated)
	assert.Equal(t, "Doplněný titulek", updated.Title)
	assert.Equal(t, "původní obsah", updated.Content)

	w = PerformRequest(env.Router, http.MethodDelete, "/api/v1/journal/"+entry.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal/"+entry.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal/"+uuid.New().String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJournalPrivacyEndpoint(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUser(t, env, "jp@example.com")

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/journal", token, map[string]interface{}{
		"content": "soukromé",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var entry models.JournalEntry
	DecodeBody(t, w, &entry)
	require.True(t, entry.IsPrivate)

	w = PerformRequest(env.Router, http.MethodPut, "/api/v1/journal/"+entry.ID.String()+"/privacy", token, map[string]interface{}{
		"is_private": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.JournalEntry
	DecodeBody(t, w, &updated)
	assert.False(t, updated.IsPrivate)

	// the flag must be explicit
	w = PerformRequest(env.Router, http.MethodPut, "/api/v1/journal/"+entry.ID.String()+"/privacy", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJournalListEndpoint(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUser(t, env, "jl@example.com")

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/journal", token, map[string]interface{}{
		"content": "veřejný zápis o běhání", "is_private": false, "entry_date": "2026-08-28",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = PerformRequest(env.Router, http.MethodPost, "/api/v1/journal", token, map[string]interface{}{
		"content": "soukromý zápis", "entry_date": "2026-08-29",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// private entries included by default
	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []models.JournalEntry
	DecodeBody(t, w, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-08-29", entries[0].EntryDate.String())

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal?include_private=false", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	DecodeBody(t, w, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "veřejný zápis o běhání", entries[0].Content)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal?search=BĚHÁNÍ", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	DecodeBody(t, w, &entries)
	require.Len(t, entries, 1)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal?include_private=maybe", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal?start_date=0828", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJournalTodayStatsTagsEndpoints(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUser(t, env, "jt@example.com")

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/journal", token, map[string]interface{}{
		"content": "dnešní", "tags": []string{"klid"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal/today", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []models.JournalEntry
	DecodeBody(t, w, &entries)
	assert.Len(t, entries, 1)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal/stats?days=7", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats service.JournalStats
	DecodeBody(t, w, &stats)
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 7, stats.DateRange.Days)
	require.Len(t, stats.PopularTags, 1)
	assert.Equal(t, "klid", stats.PopularTags[0].Tag)

	// days=0 is accepted and reports a zero average
	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal/stats?days=0", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	DecodeBody(t, w, &stats)
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 0.0, stats.AverageEntriesPerDay)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal/stats?days=-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal/tags", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Tags []string `json:"tags"`
	}
	DecodeBody(t, w, &body)
	assert.Equal(t, []string{"klid"}, body.Tags)
}

func TestJournalOwnershipAcrossUsers(t *testing.T) {
	env := SetupTestEnv(t)
	_, ownerToken := CreateTestUser(t, env, "owner@example.com")
	_, otherToken := CreateTestUser(t, env, "intruder@example.com")

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/journal", ownerToken, map[string]interface{}{
		"content": "jen můj",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var entry models.JournalEntry
	DecodeBody(t, w, &entry)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/journal/"+entry.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = PerformRequest(env.Router, http.MethodDelete, "/api/v1/journal/"+entry.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
