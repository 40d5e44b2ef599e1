package models

import "time"

// RefreshToken is a live session handle persisted server-side. Each token
// value is usable at most once: rotation deletes the presented row and
// inserts a replacement in the same transaction, so a replayed token fails
// after the legitimate client has rotated.
type RefreshToken struct {
	// Token is the opaque signed token string, unique and unguessable.
	Token string `json:"-"`

	// UserID is the owning account.
	UserID int64 `json:"user_id"`

	// ExpiresAt is the stored deadline; rows past it are rejected on use and
	// removed by the background sweeper.
	ExpiresAt time.Time `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the RefreshToken model.
func (t RefreshToken) TableName() string {
	return "refresh_tokens"
}
