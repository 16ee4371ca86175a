package admin

import (
	"errors"
	"net/http"
	"strconv"

	"rentspot/internal/pkg/response"
	"rentspot/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already guarded by JWTAuth + RequireAdmin.
func (h *Handler) RegisterRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.POST("/admins", h.AddAdmin)
	adminGroup.DELETE("/admins/:id", h.RemoveAdmin)
	adminGroup.GET("/users", h.ListUsers)
	adminGroup.DELETE("/users/:id", h.DeleteUser)
}

func (h *Handler) AddAdmin(c *gin.Context) {
	var req AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", details)
		return
	}

	if err := h.service.AddAdmin(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrUserExists):
			response.Error(c, http.StatusConflict, "USER_EXISTS", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "ADMIN_CREATE_FAILED", "Failed to create admin")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "admin created"})
}

func (h *Handler) RemoveAdmin(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.RemoveAdmin(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrAdminNotFound):
			response.Error(c, http.StatusNotFound, "ADMIN_NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "ADMIN_REMOVE_FAILED", "Failed to remove admin")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "admin removed"})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "USER_LIST_FAILED", "Failed to list users")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "USER_DELETE_FAILED", "Failed to delete user")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "user deleted"})
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return 0, false
	}
	return id, true
}
