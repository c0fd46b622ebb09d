package entities

import "time"

// User is a registered pilot.
type User struct {
	ID        int32     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
