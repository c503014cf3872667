// Package models defines the data structures that map to database tables
// and the small amount of behaviour derived from them.
package models

import (
	"time"

	"github.com/google/uuid"
)

// TwoFactorState describes how far a staff account is through TOTP
// enrollment.
type TwoFactorState string

const (
	TwoFactorNone      TwoFactorState = "none"      // no secret generated yet
	TwoFactorEnrolling TwoFactorState = "enrolling" // secret shown, first code not yet entered
	TwoFactorActive    TwoFactorState = "active"
)

// User is a back-office account. Only staff users may sign in to /admin.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	DisplayName  string     `json:"display_name"`
	IsStaff      bool       `json:"is_staff"`
	TOTPSecret   *string    `json:"-"`
	TOTPEnabled  bool       `json:"totp_enabled"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TwoFactor reports the enrollment state of the account.
func (u *User) TwoFactor() TwoFactorState {
	switch {
	case u.TOTPEnabled:
		return TwoFactorActive
	case u.TOTPSecret != nil:
		return TwoFactorEnrolling
	default:
		return TwoFactorNone
	}
}

// Needs2FASetup is true until the first TOTP code has been verified.
func (u *User) Needs2FASetup() bool {
	return u.TwoFactor() != TwoFactorActive
}

// Name is what the back office greets the user with.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
