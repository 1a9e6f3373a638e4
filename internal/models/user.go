package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity providers a user can arrive from.
const (
	ProviderGoogle    = "google"
	ProviderMicrosoft = "microsoft"
	ProviderApple     = "apple"
	ProviderDemo      = "demo"
)

// ValidProvider reports whether p names a known identity provider.
func ValidProvider(p string) bool {
	switch p {
	case ProviderGoogle, ProviderMicrosoft, ProviderApple, ProviderDemo:
		return true
	}
	return false
}

// User is a tenant. The (email, provider) pair identifies a user: the same
// email arriving from two providers is two separate accounts.
type User struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Email      string    `gorm:"not null;uniqueIndex:idx_users_email_provider" json:"email"`
	Name       string    `gorm:"not null" json:"name"`
	Provider   string    `gorm:"not null;uniqueIndex:idx_users_email_provider" json:"provider"`
	ProviderID string    `gorm:"size:255" json:"provider_id"`
	AvatarURL  string    `gorm:"size:255" json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

// BeforeCreate assigns an ID when the caller did not set one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
