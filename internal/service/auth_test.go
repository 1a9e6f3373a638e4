package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolo-pohody/backend/internal/models"
	"github.com/kolo-pohody/backend/internal/service"
	"github.com/kolo-pohody/backend/internal/testhelpers"
	"github.com/kolo-pohody/backend/internal/types"
)

func TestResolveOrCreateUserSeedsDefaults(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.ResolveOrCreateUser(ctx, "jana@example.com", "Jana", models.ProviderGoogle, "g-123", "")
	require.NoError(t, err)
	assert.Equal(t, "jana@example.com", user.Email)
	assert.Equal(t, models.ProviderGoogle, user.Provider)

	var categories []models.WellnessCategory
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("order_index asc").Find(&categories).Error)
	require.Len(t, categories, 6)
	assert.Equal(t, "Tělo", categories[0].Name)
	assert.Equal(t, "#A8B4A0", categories[0].Color)
	assert.Equal(t, "Zábava", categories[5].Name)
	assert.Equal(t, 5, categories[5].OrderIndex)
	for _, category := range categories {
		assert.True(t, category.IsActive)
	}
}

func TestResolveOrCreateUserIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	first, err := svc.ResolveOrCreateUser(ctx, "demo@example.com", "Demo User", models.ProviderDemo, "demo_id", "")
	require.NoError(t, err)
	second, err := svc.ResolveOrCreateUser(ctx, "demo@example.com", "Demo User", models.ProviderDemo, "demo_id", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.WellnessCategory{}).Where("user_id = ?", first.ID).Count(&count).Error)
	assert.EqualValues(t, 6, count)
}

func TestResolveOrCreateUserSameEmailDifferentProvider(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	google, err := svc.ResolveOrCreateUser(ctx, "same@example.com", "Same", models.ProviderGoogle, "g-1", "")
	require.NoError(t, err)
	apple, err := svc.ResolveOrCreateUser(ctx, "same@example.com", "Same", models.ProviderApple, "a-1", "")
	require.NoError(t, err)
	assert.NotEqual(t, google.ID, apple.ID)
}

func TestResolveOrCreateUserRejectsBadInput(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.ResolveOrCreateUser(ctx, "", "No Email", models.ProviderDemo, "demo_id", "")
	assert.True(t, service.IsValidation(err))

	_, err = svc.ResolveOrCreateUser(ctx, "x@example.com", "X", "github", "gh-1", "")
	assert.True(t, service.IsValidation(err))
}

func TestTokenPairRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	user, err := svc.ResolveOrCreateUser(context.Background(), "t@example.com", "T", models.ProviderDemo, "demo_id", "")
	require.NoError(t, err)

	tokens, err := svc.GenerateTokenPair(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)

	access, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, access.UserID)
	assert.Equal(t, types.TokenTypeAccess, access.TokenType)

	refresh, err := svc.ValidateToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, types.TokenTypeRefresh, refresh.TokenType)
}

func TestValidateTokenRejectsGarbageAndWrongKey(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	other := service.NewAuthService(db, "other-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	user, err := svc.ResolveOrCreateUser(context.Background(), "k@example.com", "K", models.ProviderDemo, "demo_id", "")
	require.NoError(t, err)
	tokens, err := other.GenerateTokenPair(user.ID)
	require.NoError(t, err)
	_, err = svc.ValidateToken(tokens.AccessToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestRefreshAccessToken(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")

	user, err := svc.ResolveOrCreateUser(context.Background(), "r@example.com", "R", models.ProviderDemo, "demo_id", "")
	require.NoError(t, err)
	tokens, err := svc.GenerateTokenPair(user.ID)
	require.NoError(t, err)

	accessToken, err := svc.RefreshAccessToken(tokens.RefreshToken)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, types.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, user.ID, claims.UserID)

	// an access token must not mint new access tokens
	_, err = svc.RefreshAccessToken(tokens.AccessToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestUpdateAvatar(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.ResolveOrCreateUser(ctx, "a@example.com", "A", models.ProviderDemo, "demo_id", "")
	require.NoError(t, err)

	updated, err := svc.UpdateAvatar(ctx, user.ID, "https://bucket.s3.amazonaws.com/avatars/x.png")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/avatars/x.png", updated.AvatarURL)

	reloaded, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.AvatarURL, reloaded.AvatarURL)
}
