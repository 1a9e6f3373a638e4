package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kolo-pohody/backend/internal/models"
	"github.com/kolo-pohody/backend/internal/types"
)

// IAuthService defines the interface for identity and token operations
type IAuthService interface {
	ResolveOrCreateUser(ctx context.Context, email, name, provider, providerID, avatarURL string) (*models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*models.User, error)
	GenerateTokenPair(userID uuid.UUID) (*types.TokenPair, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	RefreshAccessToken(refreshToken string) (string, error)
}

// IWellnessService defines the interface for category and entry operations
type IWellnessService interface {
	ListCategories(ctx context.Context, userID uuid.UUID) ([]models.WellnessCategory, error)
	CreateCategory(ctx context.Context, userID uuid.UUID, req *types.CreateCategoryRequest) (*models.WellnessCategory, error)
	UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, req *types.UpdateCategoryRequest) (*models.WellnessCategory, error)
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
	UpsertEntry(ctx context.Context, userID uuid.UUID, req *types.UpsertEntryRequest) (*models.WellnessEntry, bool, error)
	UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, req *types.UpdateEntryRequest) (*models.WellnessEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error
	ListEntries(ctx context.Context, userID uuid.UUID, filter EntryFilter) ([]models.WellnessEntry, error)
	TodaySnapshot(ctx context.Context, userID uuid.UUID) ([]CategoryEntry, error)
	Stats(ctx context.Context, userID uuid.UUID, days int, categoryID *uuid.UUID) ([]CategoryStats, error)
}

// IJournalService defines the interface for journal operations
type IJournalService interface {
	Create(ctx context.Context, userID uuid.UUID, req *types.CreateJournalEntryRequest) (*models.JournalEntry, error)
	Get(ctx context.Context, userID, entryID uuid.UUID) (*models.JournalEntry, error)
	Update(ctx context.Context, userID, entryID uuid.UUID, req *types.UpdateJournalEntryRequest) (*models.JournalEntry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
	SetPrivacy(ctx context.Context, userID, entryID uuid.UUID, isPrivate bool) (*models.JournalEntry, error)
	List(ctx context.Context, userID uuid.UUID, filter JournalFilter) ([]models.JournalEntry, error)
	TodayEntries(ctx context.Context, userID uuid.UUID) ([]models.JournalEntry, error)
	Stats(ctx context.Context, userID uuid.UUID, days int) (*JournalStats, error)
	Tags(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// IInspirationService defines the interface for inspiration operations
type IInspirationService interface {
	Daily(ctx context.Context, userID uuid.UUID) (*models.AIInspiration, bool, error)
	Generate(ctx context.Context, userID uuid.UUID, inspirationType string) (*models.AIInspiration, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]models.AIInspiration, error)
	Delete(ctx context.Context, userID, inspirationID uuid.UUID) error
}

// IImageService defines the interface for avatar storage
type IImageService interface {
	UploadAvatar(ctx context.Context, data []byte, contentType string) (string, error)
}
