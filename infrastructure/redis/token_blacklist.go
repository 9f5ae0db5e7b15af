package redis

import (
	"context"
	"time"

	"taskhub/domain/ports"
)

const revokedTokenPrefix = "auth:revoked:"

// TokenBlacklist stores revoked token ids as keys that expire with the token.
type TokenBlacklist struct {
	client *Client
}

func NewTokenBlacklist(client *Client) ports.TokenBlacklistPort {
	return &TokenBlacklist{client: client}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl)
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return b.client.Exists(ctx, revokedTokenPrefix+tokenID)
}
