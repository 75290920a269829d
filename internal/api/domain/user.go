package domain

import "time"

// UserStatus tracks the moderation lifecycle of an account.
type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2 encoded
	Status       UserStatus
	Confirmed    bool // email confirmation completed
	Verified     bool // identity verified by the platform
	Staff        bool
	Admin        bool
	// VerificationCode is set while the confirmation email is outstanding
	// and cleared once redeemed (nullable).
	VerificationCode *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsModerator reports whether the user may perform staff-only operations
// such as deleting flags or other users' content.
func (u User) IsModerator() bool {
	return u.Staff || u.Admin
}
