package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/apple"
	"github.com/markbates/goth/providers/google"
	"github.com/markbates/goth/providers/microsoftonline"

	"github.com/kolo-pohody/backend/config"
	"github.com/kolo-pohody/backend/internal/models"
	"github.com/kolo-pohody/backend/internal/service"
)

// Demo identity used when the demo login body omits fields.
const (
	demoDefaultEmail = "demo@example.com"
	demoDefaultName  = "Demo User"
	demoProviderID   = "demo_id"
)

// InitOAuthProviders registers every OAuth provider that has credentials
// configured. The demo provider needs none and is always available.
func InitOAuthProviders(cfg *config.Config) {
	gothic.Store = sessions.NewCookieStore([]byte(cfg.SessionSecret))

	callback := func(provider string) string {
		return cfg.BaseURL + "/api/v1/auth/callback/" + provider
	}

	providers := []goth.Provider{}
	if cfg.GoogleClientID != "" {
		providers = append(providers, google.New(
			cfg.GoogleClientID, cfg.GoogleClientSecret, callback(models.ProviderGoogle), "email", "profile",
		))
	}
	if cfg.MicrosoftClientID != "" {
		providers = append(providers, microsoftonline.New(
			cfg.MicrosoftClientID, cfg.MicrosoftClientSecret, callback(models.ProviderMicrosoft), "User.Read",
		))
	}
	if cfg.AppleClientID != "" {
		providers = append(providers, apple.New(
			cfg.AppleClientID, cfg.AppleClientSecret, callback(models.ProviderApple), nil,
			apple.ScopeName, apple.ScopeEmail,
		))
	}
	goth.UseProviders(providers...)
}

// AuthHandler serves login, token refresh and identity endpoints.
type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers auth routes; protected carries the auth
// middleware.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	{
		auth.GET("/login/:provider", h.BeginLogin)
		auth.GET("/callback/:provider", h.CompleteLogin)
		auth.POST("/demo-login", h.DemoLogin)
		auth.POST("/refresh", h.Refresh)
	}
	authed := protected.Group("/auth")
	{
		authed.POST("/logout", h.Logout)
		authed.GET("/me", h.Me)
	}
}

// BeginLogin redirects the browser to the provider's consent page.
func (h *AuthHandler) BeginLogin(c *gin.Context) {
	provider := c.Param("provider")
	if _, err := goth.GetProvider(provider); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported provider: " + provider})
		return
	}

	// gothic reads the provider from the query string
	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CompleteLogin finishes the OAuth dance, resolves the user and returns a
// token pair.
func (h *AuthHandler) CompleteLogin(c *gin.Context) {
	provider := c.Param("provider")
	if _, err := goth.GetProvider(provider); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported provider: " + provider})
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authentication failed: " + err.Error()})
		return
	}
	if gothUser.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider did not return an email address"})
		return
	}

	name := gothUser.Name
	if name == "" {
		name = gothUser.NickName
	}
	h.issueTokens(c, gothUser.Email, name, provider, gothUser.UserID, gothUser.AvatarURL)
}

// DemoLogin signs in without a provider, creating the demo account on
// first use.
func (h *AuthHandler) DemoLogin(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	// body is optional; ignore binding errors and fall back to defaults
	_ = c.ShouldBindJSON(&req)

	if req.Email == "" {
		req.Email = demoDefaultEmail
	}
	if req.Name == "" {
		req.Name = demoDefaultName
	}
	h.issueTokens(c, req.Email, req.Name, models.ProviderDemo, demoProviderID, "")
}

func (h *AuthHandler) issueTokens(c *gin.Context, email, name, provider, providerID, avatarURL string) {
	user, err := h.authService.ResolveOrCreateUser(c.Request.Context(), email, name, provider, providerID, avatarURL)
	if err != nil {
		respondError(c, err)
		return
	}
	tokens, err := h.authService.GenerateTokenPair(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user":          user,
	})
}

// Refresh exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// Logout acknowledges the logout; tokens are stateless and simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
