package domain

import "time"

// SessionTTL is fixed at issuance. Sessions are never extended by use.
const SessionTTL = 7 * 24 * time.Hour

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
