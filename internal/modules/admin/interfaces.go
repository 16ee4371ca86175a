package admin

import (
	"context"

	"rentspot/internal/domain"
)

// UserRepository — only the methods admin management uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetAdmin(ctx context.Context, userID int64, isAdmin bool) (int64, error)
	SoftDelete(ctx context.Context, userID int64) (int64, error)
	ListNonAdmins(ctx context.Context) ([]domain.User, error)
}
