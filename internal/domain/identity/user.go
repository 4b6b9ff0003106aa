// Package identity contains the user aggregate and role definitions.
package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a user's authorization level
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Password cost for bcrypt
const bcryptCost = 12

const minPasswordLength = 8

var userEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents an authenticated operator of the billing system
type User struct {
	shared.BaseEntity
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FullName     string `json:"full_name"`
	Role         Role   `json:"role"`
	Active       bool   `json:"active"`
}

// NewUser creates a new active user. The role defaults to staff when
// empty; admin accounts are promoted explicitly.
func NewUser(email, password, fullName string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !userEmailRegex.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Invalid email format")
	}
	if len(password) < minPasswordLength {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Password must be at least 8 characters")
	}
	if role == "" {
		role = RoleStaff
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
		Active:       true,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanLogin returns true if the account may authenticate
func (u *User) CanLogin() bool {
	return u.Active
}

// IsAdmin returns true if the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Deactivate disables the account without deleting it
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}
