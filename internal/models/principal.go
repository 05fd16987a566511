package models

import (
	"time"
)

// Principal roles. Each role maps to its own table and repository.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleCustomer = "customer"
)

// Principal is the authentication-facing projection of an account row.
// It carries only the columns the auth subsystem owns; CRUD attributes
// live on the kind-specific models below.
type Principal struct {
	ID           string
	Email        string
	Role         string
	PasswordHash string

	TwoFactorEnabled      bool
	TwoFactorEmail        *string    // OTP delivery address, may differ from Email
	TwoFactorOTPHash      *string    // bcrypt hash of the pending code
	TwoFactorOTPExpiresAt *time.Time // absolute expiry of the pending code
}

// OTPDestination returns the address pending codes are mailed to. The
// persisted two-factor email always wins over the login email.
func (p *Principal) OTPDestination() string {
	if p.TwoFactorEmail != nil && *p.TwoFactorEmail != "" {
		return *p.TwoFactorEmail
	}
	return p.Email
}

type Admin struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	NIDNumber    string
	NIDImage     *string
	ProfileImage *string
	Age          int
	PhoneNo      string
	Status       string // "active", "inactive"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Operator struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	PhoneNo      string
	JoiningDate  string
	Age          *int
	Gender       string // "male", "female"
	Address      *string
	LastLogin    *time.Time
	ProfileImage *string
	Status       string // "active", "inactive", "on_leave"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Customer struct {
	ID           string
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
