package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolo-pohody/backend/internal/models"
	"github.com/kolo-pohody/backend/internal/types"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// AuthService resolves OAuth and demo identities to local users and issues
// JWT token pairs for them.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

// ResolveOrCreateUser returns the user identified by (email, provider),
// creating it on first login. Creation seeds the six default wellness
// categories in the same transaction, so a user either exists with its
// defaults or not at all.
func (s *AuthService) ResolveOrCreateUser(ctx context.Context, email, name, provider, providerID, avatarURL string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, NewValidationError("email is required")
	}
	if !models.ValidProvider(provider) {
		return nil, NewValidationError("unsupported provider: %s", provider)
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND provider = ?", email, provider).
		First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		Email:      email,
		Name:       name,
		Provider:   provider,
		ProviderID: providerID,
		AvatarURL:  avatarURL,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		for i, dc := range models.DefaultCategories {
			category := models.WellnessCategory{
				UserID:     user.ID,
				Name:       dc.Name,
				Color:      dc.Color,
				Icon:       dc.Icon,
				OrderIndex: i,
				IsActive:   true,
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID loads a user by primary key.
func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateAvatar records a new avatar URL for the user.
func (s *AuthService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = avatarURL
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GenerateTokenPair issues a 24h access token and a 30d refresh token for
// the user.
func (s *AuthService) GenerateTokenPair(userID uuid.UUID) (*types.TokenPair, error) {
	access, err := s.generateToken(userID, types.TokenTypeAccess, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(userID, types.TokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &types.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) generateToken(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a signed token of either type. Callers
// check TokenType themselves; the auth middleware only accepts access
// tokens.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access
// token. Access tokens are rejected here so a leaked short-lived token
// cannot be used to mint more.
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := s.ValidateToken(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.TokenType != types.TokenTypeRefresh {
		return "", ErrInvalidToken
	}
	return s.generateToken(claims.UserID, types.TokenTypeAccess, accessTokenTTL)
}
