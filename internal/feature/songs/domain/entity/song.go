// Package entity defines the domain entities for the songs feature.
package entity

import "time"

// Song represents a song posted by a user.
type Song struct {
	// ID is the unique identifier for the song.
	ID uint `gorm:"primaryKey"`

	// Title is the song title.
	Title string `gorm:"size:255;not null"`

	// DurMinutes and DurSeconds express the song duration as two fields,
	// each in the range [0,59], mirroring the submission form.
	DurMinutes int `gorm:"not null"`
	DurSeconds int `gorm:"not null"`

	// Genre is free text supplied by the author.
	Genre string `gorm:"size:255;not null"`

	// UserID references the user who posted the song.
	UserID uint `gorm:"index;not null"`

	// Artist is the posting user, loaded on demand.
	Artist *Author `gorm:"foreignKey:UserID"`

	// Likes are the like rows recorded against this song.
	Likes []Like `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE"`

	// CreatedAt is the timestamp when the song was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the song was last updated.
	UpdatedAt time.Time
}

// Duration returns the song duration as a single value.
func (s *Song) Duration() time.Duration {
	return time.Duration(s.DurMinutes)*time.Minute + time.Duration(s.DurSeconds)*time.Second
}

// Author is a read-only projection of the users table.
// It exposes only the fields views need, never the credential columns.
type Author struct {
	ID   uint
	Name string
}

// TableName maps the projection onto the users table.
func (Author) TableName() string { return "users" }
