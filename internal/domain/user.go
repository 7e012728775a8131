package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an application user. Accounts are provisioned by the identity
// hand-off outside this service; here the record mainly supplies the
// reminder recipient.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     *string // reminders are skipped for users without one
	CreatedAt time.Time
	UpdatedAt time.Time
}
