package ports

import (
	"context"
	"time"
)

// TokenBlacklistPort remembers revoked token ids until the token would have expired anyway.
type TokenBlacklistPort interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
