package domain

import "time"

// Role identifies what a caller may do.
type Role string

const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleHR || r == RoleEmployee
}

// Default package values granted to a freshly registered HR account.
const (
	DefaultSubscription = "basic"
	DefaultPackageLimit = 5
)

// User is an account of either role. The capacity fields are only
// meaningful for HR accounts.
type User struct {
	Email            string
	Name             string
	Role             Role
	PasswordHash     string
	CompanyName      *string
	CompanyLogo      *string
	PhotoURL         *string
	Subscription     string
	PackageLimit     int
	CurrentEmployees int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsHR reports whether the account owns a company.
func (u *User) IsHR() bool {
	return u != nil && u.Role == RoleHR
}

// HasCapacity reports whether another employee can be affiliated.
func (u *User) HasCapacity() bool {
	return u.CurrentEmployees < u.PackageLimit
}
