package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kolo-pohody/backend/internal/service"
)

// ProfileHandler serves the profile view and avatar upload.
type ProfileHandler struct {
	authService  service.IAuthService
	imageService service.IImageService
}

func NewProfileHandler(authService service.IAuthService, imageService service.IImageService) *ProfileHandler {
	return &ProfileHandler{
		authService:  authService,
		imageService: imageService,
	}
}

// RegisterRoutes registers profile routes on an authenticated group.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.POST("/avatar", h.UploadAvatar)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
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

// UploadAvatar stores a multipart image under the "avatar" field and
// records its URL on the user.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "avatar storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	avatarURL, err := h.imageService.UploadAvatar(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := h.authService.UpdateAvatar(c.Request.Context(), userID, avatarURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
