package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kolo-pohody/backend/internal/models"
	"github.com/kolo-pohody/backend/internal/service"
	"github.com/kolo-pohody/backend/internal/testhelpers"
)

// TestEnv bundles the router and services handler tests exercise.
type TestEnv struct {
	DB          *gorm.DB
	Router      *gin.Engine
	AuthService *service.AuthService
}

// SetupTestEnv builds a router backed by an in-memory database with every
// route registered. Optional integrations (generator, redis, S3) stay nil
// so inspiration falls back to canned content and avatar upload reports
// unavailable.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	authService := service.NewAuthService(db, "test-secret")

	router := gin.New()
	router.Use(gin.Recovery())
	RegisterRoutes(router, db, authService, nil, nil, nil)

	return &TestEnv{
		DB:          db,
		Router:      router,
		AuthService: authService,
	}
}

// CreateTestUser provisions a demo-provider user with its default
// categories and returns the user plus a valid access token.
func CreateTestUser(t *testing.T, env *TestEnv, email string) (*models.User, string) {
	t.Helper()
	user, err := env.AuthService.ResolveOrCreateUser(
		context.Background(), email, "Test User", models.ProviderDemo, "demo_id", "",
	)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	tokens, err := env.AuthService.GenerateTokenPair(user.ID)
	if err != nil {
		t.Fatalf("failed to generate tokens: %v", err)
	}
	return user, tokens.AccessToken
}

// PerformRequest runs one request through the router. A non-empty token is
// sent as a bearer Authorization header.
func PerformRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// DecodeBody unmarshals a JSON response body into out.
func DecodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

// ActiveCategoryID returns the ID of the user's first active category.
func ActiveCategoryID(t *testing.T, env *TestEnv, userID uuid.UUID) uuid.UUID {
	t.Helper()
	var category models.WellnessCategory
	if err := env.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("order_index asc").First(&category).Error; err != nil {
		t.Fatalf("failed to load category: %v", err)
	}
	return category.ID
}
