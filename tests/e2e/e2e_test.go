package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentspot/internal/database"
	"rentspot/internal/domain"
	"rentspot/internal/middleware"
	"rentspot/internal/modules/admin"
	"rentspot/internal/modules/auth"
	"rentspot/internal/modules/profile"
	jwtsvc "rentspot/internal/pkg/jwt"
	"rentspot/internal/repository"
)

// newTestApp wires the full router against an in-memory database, the same
// way cmd/api does.
func newTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.RefreshToken{}))

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)

	signer := jwtsvc.New("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
	mailer := auth.NewDevConsoleMailer(false)

	authService := auth.NewService(userRepo, refreshRepo, signer, mailer, 10*time.Minute, 3)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	}, 15*time.Minute, 7*24*time.Hour)

	adminHandler := admin.NewHandler(admin.NewService(userRepo))
	profileHandler := profile.NewHandler(profile.NewService(userRepo))

	r := gin.New()
	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(signer))
		{
			authHandler.RegisterProtectedRoutes(protected)
			profileHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.RequireAdmin())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func pendingCode(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()
	var user domain.User
	require.NoError(t, db.Where("email = ?", email).First(&user).Error)
	require.NotEmpty(t, user.OTP)
	return user.OTP
}

func register(t *testing.T, r *gin.Engine, email string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/registration", gin.H{
		"first_name": "Jan",
		"surname":    "Kowalski",
		"email":      email,
		"password":   "sekret123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func verify(t *testing.T, r *gin.Engine, db *gorm.DB, email string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/email-auth/verify-otp", gin.H{
		"email": email,
		"code":  pendingCode(t, db, email),
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func login(t *testing.T, r *gin.Engine, email string) (accessToken, refreshToken string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email":    email,
		"password": "sekret123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	require.NotEmpty(t, data.AccessToken)
	require.NotEmpty(t, data.RefreshToken)
	return data.AccessToken, data.RefreshToken
}

func TestRegistrationAndSessionLifecycle(t *testing.T) {
	r, db := newTestApp(t)
	const email = "jan@x.com"

	register(t, r, email)

	// registering the same email again points at the pending verification
	w := doJSON(t, r, http.MethodPost, "/api/registration", gin.H{
		"first_name": "Jan", "surname": "Kowalski", "email": email, "password": "sekret123",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_EXISTS_UNVERIFIED", decode(t, w).Error.Code)

	// unverified accounts cannot log in
	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{"email": email, "password": "sekret123"}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NOT_VERIFIED", decode(t, w).Error.Code)

	// a wrong code does not verify
	w = doJSON(t, r, http.MethodPost, "/api/email-auth/verify-otp", gin.H{"email": email, "code": "000000"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_OTP", decode(t, w).Error.Code)

	verify(t, r, db, email)

	// the consumed code cannot be replayed
	w = doJSON(t, r, http.MethodPost, "/api/email-auth/verify-otp", gin.H{"email": email, "code": "000000"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	accessToken, refreshToken := login(t, r, email)

	// access token opens protected routes
	w = doJSON(t, r, http.MethodGet, "/api/profile", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// refresh mints a new access token without rotating the refresh token
	w = doJSON(t, r, http.MethodPost, "/api/login/refresh-token", gin.H{"refresh_token": refreshToken}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)

	// logout revokes the session
	w = doJSON(t, r, http.MethodPost, "/api/login/logout", gin.H{"refresh_token": refreshToken}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the revoked refresh token is dead for good
	w = doJSON(t, r, http.MethodPost, "/api/login/refresh-token", gin.H{"refresh_token": refreshToken}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_REFRESH_TOKEN", decode(t, w).Error.Code)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	r, db := newTestApp(t)
	const email = "jan@x.com"

	register(t, r, email)
	verify(t, r, db, email)

	wWrongPw := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"email": email, "password": "zle-haslo"}, nil)
	wUnknown := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"email": "ghost@x.com", "password": "cokolwiek"}, nil)

	assert.Equal(t, http.StatusUnauthorized, wWrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, decode(t, wWrongPw).Error.Message, decode(t, wUnknown).Error.Message)
}

func TestFourthLoginEvictsOldestSession(t *testing.T) {
	r, db := newTestApp(t)
	const email = "jan@x.com"

	register(t, r, email)
	verify(t, r, db, email)

	var refreshTokens []string
	for i := 0; i < 4; i++ {
		_, rt := login(t, r, email)
		refreshTokens = append(refreshTokens, rt)
		// sqlite keeps timestamps at millisecond precision; keep the
		// creation order unambiguous
		time.Sleep(5 * time.Millisecond)
	}

	var active int64
	require.NoError(t, db.Model(&domain.RefreshToken{}).
		Where("revoked = ?", false).Count(&active).Error)
	assert.Equal(t, int64(3), active)

	// the oldest session was revoked, the rest still refresh
	w := doJSON(t, r, http.MethodPost, "/api/login/refresh-token", gin.H{"refresh_token": refreshTokens[0]}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	for _, rt := range refreshTokens[1:] {
		w = doJSON(t, r, http.MethodPost, "/api/login/refresh-token", gin.H{"refresh_token": rt}, nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

func TestLogoutAllDevices(t *testing.T) {
	r, db := newTestApp(t)
	const email = "jan@x.com"

	register(t, r, email)
	verify(t, r, db, email)

	accessToken, rt1 := login(t, r, email)
	_, rt2 := login(t, r, email)

	w := doJSON(t, r, http.MethodPost, "/api/login/logout-all-devices", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, rt := range []string{rt1, rt2} {
		w = doJSON(t, r, http.MethodPost, "/api/login/refresh-token", gin.H{"refresh_token": rt}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// running it again is still a success
	w = doJSON(t, r, http.MethodPost, "/api/login/logout-all-devices", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesRequireAdminClaim(t *testing.T) {
	r, db := newTestApp(t)
	const email = "jan@x.com"

	register(t, r, email)
	verify(t, r, db, email)
	accessToken, _ := login(t, r, email)

	w := doJSON(t, r, http.MethodGet, "/api/admin/users", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// promote and log in again so the claim is fresh
	require.NoError(t, db.Model(&domain.User{}).Where("email = ?", email).
		Update("is_admin", true).Error)
	adminToken, _ := login(t, r, email)

	w = doJSON(t, r, http.MethodGet, "/api/admin/users", nil, map[string]string{
		"Authorization": "Bearer " + adminToken,
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
