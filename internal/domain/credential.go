package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalendarCredential is a user's external-calendar token pair. At most one
// credential exists per user; a later authorization overwrites the earlier
// one. Tokens are never surfaced to the user — only an existence flag is.
type CalendarCredential struct {
	UserID       uuid.UUID
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsExpired reports whether the access token is known to have expired.
// A nil expiry means the provider did not report one; the token is then
// assumed live until the provider rejects it.
func (c *CalendarCredential) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
