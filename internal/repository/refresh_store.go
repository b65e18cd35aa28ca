package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const refreshKeyPrefix = "refresh:"

// RefreshTokenStore is the allow list of live refresh tokens, keyed by JTI.
// Implementations: Redis (multi-instance) or in-memory (local dev, single
// instance).
type RefreshTokenStore interface {
	Save(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error
	// Take removes the token and returns its owner. ok is false when the
	// token was never issued, was already taken, or has expired. Of any
	// number of concurrent calls for one JTI at most one reports ok.
	Take(ctx context.Context, jti string) (userID uuid.UUID, ok bool, err error)
}
