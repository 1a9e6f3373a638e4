package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolo-pohody/backend/internal/types"
)

// WellnessCategory is a user-owned scoring category. Deletion is logical
// only: is_active=false hides the category from listings while historical
// entries keep referencing it.
type WellnessCategory struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name       string    `gorm:"not null" json:"name"`
	Color      string    `gorm:"size:7;not null" json:"color"`
	Icon       string    `gorm:"size:50;not null" json:"icon"`
	OrderIndex int       `gorm:"not null" json:"order_index"`
	IsActive   bool      `gorm:"not null" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

func (c *WellnessCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// WellnessEntry is a single score for a category on a calendar date. At
// most one entry exists per (user, category, date); a second write for the
// same triple updates in place.
type WellnessEntry struct {
	ID         uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	CategoryID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Score      int        `gorm:"not null" json:"score"`
	Note       string     `gorm:"type:text" json:"note"`
	EntryDate  types.Date `gorm:"type:date;not null;index" json:"entry_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (e *WellnessEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// DefaultCategory describes one of the six categories seeded for every new
// user.
type DefaultCategory struct {
	Name  string
	Color string
	Icon  string
}

// DefaultCategories are seeded in order; their slice index is the
// order_index.
var DefaultCategories = []DefaultCategory{
	{Name: "Tělo", Color: "#A8B4A0", Icon: "body"},
	{Name: "Mysl", Color: "#8C7B6F", Icon: "mind"},
	{Name: "Vztahy", Color: "#C8A89A", Icon: "relationships"},
	{Name: "Inspirace", Color: "#6B7F6B", Icon: "inspiration"},
	{Name: "Práce", Color: "#5A6A70", Icon: "work"},
	{Name: "Zábava", Color: "#E0E0D8", Icon: "fun"},
}

// Defaults applied when a category is created without color or icon.
const (
	DefaultCategoryColor = "#A8B4A0"
	DefaultCategoryIcon  = "default"
)
