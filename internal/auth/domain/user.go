package domain

import "time"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User is the stored credential record. PasswordHash never leaves the service layer.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string `json:"-"`
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
