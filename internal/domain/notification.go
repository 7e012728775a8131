package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app copy of a delivered reminder.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Body      string
	IsRead    bool
	CreatedAt time.Time
}
