package profile

import (
	"context"

	"rentspot/internal/domain"
)

// UserRepository — only the methods the profile service uses.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateFields(ctx context.Context, userID int64, fields map[string]any) (int64, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) (int64, error)
}
