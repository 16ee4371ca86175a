package auth

import (
	"errors"
	"net/http"
	"time"

	"rentspot/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// CookieConfig carries the transport attributes for the token cookies.
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite
	Path     string
}

// Handler manages all HTTP interactions for authentication. Tokens travel
// both as httpOnly cookies and in the JSON body, as the clients expect.
type Handler struct {
	service    *Service
	cookies    CookieConfig
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewHandler(service *Service, cookies CookieConfig, accessTTL, refreshTTL time.Duration) *Handler {
	return &Handler{
		service:    service,
		cookies:    cookies,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.POST("/registration", h.Register)

	emailAuth := api.Group("/email-auth")
	{
		emailAuth.POST("/verify-otp", h.VerifyCode)
		emailAuth.POST("/resend-otp", h.ResendCode)
	}

	login := api.Group("/login")
	{
		login.POST("", h.Login)
		login.POST("/refresh-token", h.Refresh)
		login.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/login/logout-all-devices", h.LogoutAll)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrEmailExistsUnverified):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS_UNVERIFIED", err.Error())
		case errors.Is(err, ErrEmailExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.VerifyCode(c.Request.Context(), req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
		case errors.Is(err, ErrInvalidOTP):
			response.Error(c, http.StatusBadRequest, "INVALID_OTP", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "VERIFICATION_FAILED", "Failed to verify code")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "e-mail has been confirmed"})
}

func (h *Handler) ResendCode(c *gin.Context) {
	var req ResendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ResendCode(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "RESEND_FAILED", "Failed to resend code")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "a new verification code has been sent to your e-mail"})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
		case errors.Is(err, ErrNotVerified):
			response.Error(c, http.StatusForbidden, "NOT_VERIFIED", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	h.setTokenCookie(c, accessCookie, result.AccessToken, h.accessTTL)
	h.setTokenCookie(c, refreshCookie, result.RefreshToken, h.refreshTTL)

	response.Success(c, http.StatusOK, gin.H{
		"user":         result.User,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	token := h.refreshTokenFromRequest(c)

	accessToken, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, ErrRefreshExpiredOrRevoked), errors.Is(err, ErrInvalidRefreshToken):
			response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh token")
		}
		return
	}

	h.setTokenCookie(c, accessCookie, accessToken, h.accessTTL)

	response.Success(c, http.StatusOK, gin.H{"accessToken": accessToken})
}

func (h *Handler) Logout(c *gin.Context) {
	token := h.refreshTokenFromRequest(c)

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		switch {
		case errors.Is(err, ErrInvalidRefreshToken):
			response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		}
		return
	}

	h.clearTokenCookies(c)

	response.Success(c, http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (h *Handler) LogoutAll(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.LogoutAll(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	h.clearTokenCookies(c)

	response.Success(c, http.StatusOK, gin.H{"message": "logged out from all devices"})
}

// refreshTokenFromRequest prefers the httpOnly cookie, falling back to the
// JSON body for clients that keep tokens themselves.
func (h *Handler) refreshTokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(refreshCookie); err == nil && token != "" {
		return token
	}
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}

func (h *Handler) setTokenCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(name, value, int(ttl.Seconds()), h.cookies.Path, "", h.cookies.Secure, true)
}

func (h *Handler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(accessCookie, "", -1, h.cookies.Path, "", h.cookies.Secure, true)
	c.SetCookie(refreshCookie, "", -1, h.cookies.Path, "", h.cookies.Secure, true)
}
