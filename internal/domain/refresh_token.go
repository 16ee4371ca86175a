package domain

import "time"

// RefreshToken is one row of the refresh-session ledger.
//
// Notes:
// - The signed token string itself is the lookup key; access tokens are
//   never persisted.
// - Revoked flips false -> true exactly once (logout, logout-all, or
//   eviction when the per-user session cap is reached) and is never reset.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Token string `json:"-" gorm:"size:1024;uniqueIndex;not null"`

	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
