package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise represents a single logged activity belonging to a user.
// Username is denormalized from the owning user so log queries can
// filter without a join; UserID is the authoritative reference.
type Exercise struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Duration    int32     `json:"duration"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}
