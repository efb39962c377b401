package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that exercises are logged against
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
