package entity

import "time"

// Like records that a user liked a song. A user may like the same song
// more than once; every row counts toward the leaderboard.
type Like struct {
	// ID is the unique identifier for the like.
	ID uint `gorm:"primaryKey"`

	// UserID references the user who liked the song.
	UserID uint `gorm:"index;not null"`

	// SongID references the liked song.
	SongID uint `gorm:"index;not null"`

	// User is the liking user, loaded on demand.
	User *Author `gorm:"foreignKey:UserID"`

	// CreatedAt is the timestamp when the like was created.
	CreatedAt time.Time
}
