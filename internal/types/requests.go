package types

import (
	"encoding/json"

	"github.com/google/uuid"
)

// TagList is an ordered list of journal tags. JSON input that is not a list
// of strings is silently coerced to an empty list rather than rejected.
type TagList []string

// UnmarshalJSON implements the tolerant coercion.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		*t = TagList{}
		return nil
	}
	*t = tags
	return nil
}

// DemoLoginRequest is the body for the credential-less demo login.
type DemoLoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateCategoryRequest is the body for creating a wellness category
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// UpdateCategoryRequest carries partial category updates; only supplied
// fields mutate.
type UpdateCategoryRequest struct {
	Name       *string `json:"name"`
	Color      *string `json:"color"`
	Icon       *string `json:"icon"`
	OrderIndex *int    `json:"order_index"`
}

// UpsertEntryRequest is the body for creating or updating a wellness entry
// on its (category, date) natural key.
type UpsertEntryRequest struct {
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Score      *int      `json:"score" binding:"required"`
	EntryDate  string    `json:"entry_date" binding:"required"`
	Note       string    `json:"note"`
}

// UpdateEntryRequest carries partial wellness entry updates.
type UpdateEntryRequest struct {
	Score *int    `json:"score"`
	Note  *string `json:"note"`
}

// CreateJournalEntryRequest is the body for creating a journal entry.
type CreateJournalEntryRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content" binding:"required"`
	EntryDate string  `json:"entry_date"`
	IsPrivate *bool   `json:"is_private"`
	Tags      TagList `json:"tags"`
}

// UpdateJournalEntryRequest carries partial journal entry updates.
type UpdateJournalEntryRequest struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	EntryDate *string  `json:"entry_date"`
	IsPrivate *bool    `json:"is_private"`
	Tags      *TagList `json:"tags"`
}

// PrivacyRequest toggles journal entry privacy; the flag must be explicit.
type PrivacyRequest struct {
	IsPrivate *bool `json:"is_private"`
}

// GenerateInspirationRequest selects the inspiration type to generate.
type GenerateInspirationRequest struct {
	Type string `json:"type"`
}
