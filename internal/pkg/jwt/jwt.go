package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the only error verification returns. Tampering, a wrong
// key and plain expiry are indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwtlib.RegisteredClaims
}

// Service signs and verifies the two token classes. Access and refresh
// tokens use distinct secrets and distinct lifetimes.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func New(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *Service) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *Service) GenerateAccessToken(userID int64, email string, isAdmin bool) (string, error) {
	return sign(s.accessSecret, s.accessTTL, userID, email, isAdmin)
}

func (s *Service) GenerateRefreshToken(userID int64, email string, isAdmin bool) (string, error) {
	return sign(s.refreshSecret, s.refreshTTL, userID, email, isAdmin)
}

func (s *Service) ValidateAccessToken(tokenStr string) (*Claims, error) {
	return verify(s.accessSecret, tokenStr)
}

func (s *Service) ValidateRefreshToken(tokenStr string) (*Claims, error) {
	return verify(s.refreshSecret, tokenStr)
}

func sign(secret []byte, ttl time.Duration, userID int64, email string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verify(secret []byte, tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
