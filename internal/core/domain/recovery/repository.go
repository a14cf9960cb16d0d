package recovery

import (
	"context"
	"time"
)

type TokenRepository interface {
	// Create inserts a new token record. Prior outstanding tokens for the
	// same email are left untouched.
	Create(ctx context.Context, input CreateTokenInput) (TokenRecord, error)
	// GetLive returns the record matching token with ExpiresAt > now (strict)
	// that has not been consumed, or ErrInvalidOrExpiredToken.
	GetLive(ctx context.Context, token Token, now time.Time) (TokenRecord, error)
	// Consume atomically transitions a live record to consumed and returns
	// it. Expired, consumed and unknown tokens all fail with
	// ErrInvalidOrExpiredToken; under concurrent calls exactly one wins.
	Consume(ctx context.Context, token Token, now time.Time) (TokenRecord, error)
	// DeleteExpired removes records with ExpiresAt <= now. Storage hygiene
	// only, never required for correctness.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
