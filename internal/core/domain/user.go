package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the minimal identity record the core consumes. Credentials and
// roles live with the external identity provider; only the resolved id
// and a display name reach the engines.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
