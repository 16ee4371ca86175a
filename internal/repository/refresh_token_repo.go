package repository

import (
	"context"
	"time"

	"rentspot/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RefreshTokenRepository provides DB access to the refresh-session ledger.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Admit inserts a new session row while holding the per-user active count at
// maxActive. When the cap is already reached, the chronologically oldest
// non-revoked rows are revoked first. The whole check-evict-insert runs in
// one transaction so concurrent logins cannot race past the cap.
func (r *RefreshTokenRepository) Admit(ctx context.Context, t *domain.RefreshToken, maxActive int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&domain.RefreshToken{}).
			Where("user_id = ? AND revoked = ?", t.UserID, false).
			Order("created_at ASC")
		// SQLite serializes writers on its own and rejects FOR UPDATE.
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var active []domain.RefreshToken
		if err := q.Find(&active).Error; err != nil {
			return err
		}

		if excess := len(active) - maxActive + 1; excess > 0 {
			ids := make([]int64, 0, excess)
			for _, row := range active[:excess] {
				ids = append(ids, row.ID)
			}
			if err := tx.Model(&domain.RefreshToken{}).
				Where("id IN ?", ids).
				Update("revoked", true).Error; err != nil {
				return err
			}
		}

		return tx.Create(t).Error
	})
}

// GetActive returns the ledger row for the token only when it is neither
// revoked nor past its stored expiry.
func (r *RefreshTokenRepository) GetActive(ctx context.Context, token string, now time.Time) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND revoked = ? AND expires_at > ?", token, false, now).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Revoke flips the matching row to revoked. Missing rows are not an error,
// so revoking twice is a no-op.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("token = ? AND revoked = ?", token, false).
		Update("revoked", true).Error
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

func (r *RefreshTokenRepository) ListActiveForUser(ctx context.Context, userID int64) ([]domain.RefreshToken, error) {
	var tokens []domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked = ?", userID, false).
		Order("created_at ASC").
		Find(&tokens).Error
	return tokens, err
}

// DeleteExpired removes rows whose stored expiry has passed. Non-expired
// rows, revoked or not, are left alone.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&domain.RefreshToken{})
	return tx.RowsAffected, tx.Error
}
