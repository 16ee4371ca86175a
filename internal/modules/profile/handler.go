package profile

import (
	"errors"
	"net/http"

	"rentspot/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already guarded by JWTAuth.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	profileGroup := protected.Group("/profile")
	{
		profileGroup.GET("", h.GetProfile)
		profileGroup.PUT("", h.UpdateProfile)
		profileGroup.PUT("/password", h.ChangePassword)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to load profile")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), userID, req); err != nil {
		switch {
		case errors.Is(err, ErrNameTooShort), errors.Is(err, ErrNothingToUpdate):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update profile")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "profile updated"})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			response.Error(c, http.StatusForbidden, "WRONG_PASSWORD", err.Error())
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "PASSWORD_CHANGE_FAILED", "Failed to change password")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password changed"})
}
