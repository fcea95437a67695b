package models

import "time"

// TokenState is the lifecycle state of a refresh token. Expired and revoked
// are terminal; rotation never resurrects a token.
type TokenState string

const (
	TokenActive  TokenState = "active"
	TokenExpired TokenState = "expired"
	TokenRevoked TokenState = "revoked"
)

// RefreshToken is one link of a user's linear rotation chain. Exactly one
// token per chain is usable at a time; each refresh revokes the presented
// token and mints its successor.
type RefreshToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	IsRevoked bool      `json:"is_revoked" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// StateAt classifies the token at the given instant. Revocation wins over
// expiry so a stolen-then-revoked token is always reported as revoked.
func (t *RefreshToken) StateAt(now time.Time) TokenState {
	if t.IsRevoked {
		return TokenRevoked
	}
	if !t.ExpiresAt.After(now) {
		return TokenExpired
	}
	return TokenActive
}
