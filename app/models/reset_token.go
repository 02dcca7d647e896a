package models

import "time"

// PasswordResetToken is a single-use credential gating the reset flow.
// Tokens expire one hour after creation and are never deleted
// automatically; /debug/clear-tokens is the only removal path.
type PasswordResetToken struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
