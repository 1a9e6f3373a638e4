package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolo-pohody/backend/internal/types"
)

// Tags is a JSON-serialized ordered list of strings as stored in the tags
// column. Malformed blobs decode to an empty list instead of failing, so a
// single bad row never breaks listings or aggregation.
type Tags string

// NewTags serializes a tag list for storage. Serialization of a plain
// string slice cannot fail.
func NewTags(tags []string) Tags {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return Tags(data)
}

// List decodes the stored blob. The second return reports whether the blob
// was well-formed.
func (t Tags) List() ([]string, bool) {
	if t == "" {
		return []string{}, true
	}
	var tags []string
	if err := json.Unmarshal([]byte(t), &tags); err != nil {
		return []string{}, false
	}
	return tags, true
}

// MarshalJSON emits the decoded list, never the raw blob.
func (t Tags) MarshalJSON() ([]byte, error) {
	tags, _ := t.List()
	return json.Marshal(tags)
}

// JournalEntry is a dated free-text entry. Unlike wellness entries there is
// no per-day uniqueness; a user may write any number of entries per date.
type JournalEntry struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title     string     `gorm:"size:255" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	EntryDate types.Date `gorm:"type:date;not null;index" json:"entry_date"`
	IsPrivate bool       `gorm:"not null" json:"is_private"`
	Tags      Tags       `gorm:"type:text" json:"tags"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (e *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
