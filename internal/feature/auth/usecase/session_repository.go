package usecase

import (
	"context"

	"songshare/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for session entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID (session token value).
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Delete removes a session from the storage.
	Delete(ctx context.Context, id string) error
}
