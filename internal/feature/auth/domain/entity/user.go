// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	songentity "songshare/internal/feature/songs/domain/entity"
)

// User represents a registered user in the system.
// It contains authentication credentials and the user's song catalog.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown next to the user's songs.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Songs are the songs this user has posted.
	Songs []songentity.Song `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// Likes are the like rows this user has created.
	Likes []songentity.Like `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
