// Package usecase implements the business logic for the songs feature.
package usecase

import "errors"

var (
	// ErrSongNotFound is returned when a song cannot be found by ID.
	ErrSongNotFound = errors.New("song not found")

	// ErrNotSongOwner is returned when a user attempts to delete a song they do not own.
	ErrNotSongOwner = errors.New("user is not the song owner")
)
