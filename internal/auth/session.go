package auth

import (
	"time"

	"notodo/internal/models"
)

// Session is what a successful login hands back: the bearer token, when it
// stops being accepted, and who it belongs to. Clients carry it explicitly.
type Session struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      models.PublicUser `json:"user"`
}

// Expired reports whether the token is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return s.Token == "" || !now.Before(s.ExpiresAt)
}
