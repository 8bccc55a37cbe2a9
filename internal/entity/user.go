package entity

import "time"

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User account statuses. A deactivated account cannot log in.
const (
	StatusActivated   = "activated"
	StatusSuspended   = "suspended"
	StatusPending     = "pending"
	StatusDeactivated = "deactivated"
)

type User struct {
	ID        int       `json:"user_id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone_number"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
