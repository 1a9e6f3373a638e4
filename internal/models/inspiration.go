package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolo-pohody/backend/internal/types"
)

// Inspiration types the generator understands.
const (
	InspirationDailyQuote       = "daily_quote"
	InspirationWellnessTip      = "wellness_tip"
	InspirationReflectionPrompt = "reflection_prompt"
	InspirationAffirmation      = "affirmation"
)

// InspirationTypes lists every valid inspiration type.
var InspirationTypes = []string{
	InspirationDailyQuote,
	InspirationWellnessTip,
	InspirationReflectionPrompt,
	InspirationAffirmation,
}

// ValidInspirationType reports whether t names a known inspiration type.
func ValidInspirationType(t string) bool {
	for _, known := range InspirationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// AIInspiration is one piece of generated content. The first row per
// (user, created_date) is canonical for the passive daily fetch; explicit
// generation requests insert additional rows on the same date.
type AIInspiration struct {
	ID              uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	InspirationType string     `gorm:"size:50;not null" json:"type"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	CreatedDate     types.Date `gorm:"type:date;not null;index" json:"created_date"`
	CreatedAt       time.Time  `json:"-"`
}

func (i *AIInspiration) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
