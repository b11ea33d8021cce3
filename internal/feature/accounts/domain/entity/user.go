// Package entity defines the domain entities for the accounts feature.
package entity

import "time"

// User represents a housemate with access to the shared ledger.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users and is matched case-sensitively.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	PasswordHash string `gorm:"size:255;not null"`

	// FullName is the user's display name.
	FullName string `gorm:"size:100;not null"`

	// IsAdmin grants access to the admin view and settlement operations.
	IsAdmin bool `gorm:"not null;default:false"`

	// ForcePasswordChange stays true until the user completes the
	// mandatory first password change.
	ForcePasswordChange bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}
