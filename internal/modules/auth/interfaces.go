package auth

import (
	"context"
	"time"

	"rentspot/internal/domain"
	"rentspot/internal/pkg/jwt"
)

// UserRepository — only the methods the session manager uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetOTP(ctx context.Context, userID int64, code string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, userID int64) error
}

// RefreshTokenRepository — ledger access. Admit owns the session-cap
// eviction so the service never does read-evict-insert as separate calls.
type RefreshTokenRepository interface {
	Admit(ctx context.Context, t *domain.RefreshToken, maxActive int) error
	GetActive(ctx context.Context, token string, now time.Time) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

type TokenSigner interface {
	GenerateAccessToken(userID int64, email string, isAdmin bool) (string, error)
	GenerateRefreshToken(userID int64, email string, isAdmin bool) (string, error)
	ValidateRefreshToken(token string) (*jwt.Claims, error)
	RefreshTTL() time.Duration
}

type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
