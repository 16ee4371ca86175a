package middleware

import (
	"net/http"
	"strings"

	jwtsvc "rentspot/internal/pkg/jwt"
	"rentspot/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// JWTAuth authenticates the request by access token, from the httpOnly
// cookie or the Authorization header, and puts the identity claims into the
// gin context.
func JWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, errCode := extractAccessToken(c)
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, errCode, "Missing authentication token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateAccessToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("is_admin", claims.IsAdmin)

		c.Next()
	}
}

func extractAccessToken(c *gin.Context) (token string, errCode string) {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie, ""
	}

	h := c.GetHeader("Authorization")
	if h == "" {
		return "", "AUTH_HEADER_MISSING"
	}
	if !strings.HasPrefix(h, "Bearer ") {
		return "", "INVALID_AUTH_FORMAT"
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), "INVALID_AUTH_FORMAT"
}
