package domain

import "time"

// Role enumerates account types.
type Role string

const (
	RoleWholesaler Role = "WHOLESALER"
	RoleRetailer   Role = "RETAILER"
	RoleAgent      Role = "AGENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleWholesaler, RoleRetailer, RoleAgent:
		return true
	}
	return false
}

// User is an account. ID is the immutable subject id that owns resources;
// LoginID is the human-chosen credential name.
type User struct {
	ID           string
	LoginID      string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
