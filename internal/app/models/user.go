package models

import (
	"time"
)

// RoleAdmin is the only role the seed creates; roles are informational, any logged in user may act.
const RoleAdmin = "admin"

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Username  string    `json:"username" db:"username" example:"admin"`
	Password  string    `json:"-" db:"password"` // bcrypt hash
	Role      string    `json:"role" db:"role" example:"admin"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
