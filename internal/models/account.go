package models

import "time"

// Role is the access level of a user within a company.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	// RoleOperator is never stored. It is granted at sign-in to admins listed
	// as platform operators and opens the cross-company lead board.
	RoleOperator Role = "operator"
)

// CanAdminister reports whether the role opens the admin area.
func (r Role) CanAdminister() bool {
	return r == RoleAdmin || r == RoleOperator
}

// UserType is the signup path derived from an email address.
type UserType string

const (
	UserTypeCompany  UserType = "company"
	UserTypeEmployee UserType = "employee"
)

// Company is an organisation registered on the platform.
type Company struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	AdminEmail string    `json:"admin_email"`
	CreatedAt  time.Time `json:"created_at"`
}

// User belongs to exactly one company.
type User struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Populated by sign-in lookups
	Company *Company `json:"company,omitempty"`
}
