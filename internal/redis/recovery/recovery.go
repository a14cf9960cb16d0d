package recovery

import (
	"context"
	"encoding/json"
	"errors"
	c "regain/internal/core/domain/common"
	e "regain/internal/core/domain/errors"
	"regain/internal/core/domain/recovery"
	"time"

	"github.com/go-redis/redis/v9"
)

const KEY_PREFIX = "recovery_token::"

// RedisTokenRepository keys records by token value and relies on native key
// TTL for expiry, so DeleteExpired is a no-op. Consume maps to GETDEL, which
// is the atomic delete-and-return the token lifecycle needs.
type RedisTokenRepository struct {
	client *redis.Client
}

func NewRedisTokenRepository(client *redis.Client) *RedisTokenRepository {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	return &RedisTokenRepository{client: client}
}

type tokenRecord struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (r *RedisTokenRepository) Create(
	ctx context.Context,
	input recovery.CreateTokenInput,
) (rec recovery.TokenRecord, err error) {
	payload, err := json.Marshal(tokenRecord{
		Email:     string(input.Email),
		CreatedAt: input.CreatedAt,
		ExpiresAt: input.ExpiresAt,
	})
	if err != nil {
		return rec, err
	}

	ok, err := r.client.SetNX(
		ctx,
		KEY_PREFIX+string(input.Token),
		payload,
		input.ExpiresAt.Sub(input.CreatedAt),
	).Result()
	if err != nil {
		return rec, err
	}
	if !ok {
		return rec, recovery.ErrTokenAlreadyExists
	}
	return recovery.TokenRecord{
		Token:     input.Token,
		Email:     input.Email,
		CreatedAt: input.CreatedAt,
		ExpiresAt: input.ExpiresAt,
	}, nil
}

func (r *RedisTokenRepository) GetLive(
	ctx context.Context,
	token recovery.Token,
	now time.Time,
) (rec recovery.TokenRecord, err error) {
	payload, err := r.client.Get(ctx, KEY_PREFIX+string(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return rec, recovery.ErrInvalidOrExpiredToken
	}
	if err != nil {
		return rec, err
	}
	return decodeTokenRecord(token, payload, now)
}

func (r *RedisTokenRepository) Consume(
	ctx context.Context,
	token recovery.Token,
	now time.Time,
) (rec recovery.TokenRecord, err error) {
	payload, err := r.client.GetDel(ctx, KEY_PREFIX+string(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return rec, recovery.ErrInvalidOrExpiredToken
	}
	if err != nil {
		return rec, err
	}
	rec, err = decodeTokenRecord(token, payload, now)
	if err != nil {
		return rec, err
	}
	rec.ConsumedAt = c.NewOptional(now, true)
	return rec, nil
}

func (r *RedisTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func decodeTokenRecord(
	token recovery.Token,
	payload []byte,
	now time.Time,
) (rec recovery.TokenRecord, err error) {
	decoded := tokenRecord{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return rec, err
	}
	// Key TTL normally takes care of expiry, the explicit check guards
	// against clock skew between the service and the Redis server.
	if !now.Before(decoded.ExpiresAt) {
		return rec, recovery.ErrInvalidOrExpiredToken
	}
	return recovery.TokenRecord{
		Token:     token,
		Email:     c.Email(decoded.Email),
		CreatedAt: decoded.CreatedAt,
		ExpiresAt: decoded.ExpiresAt,
	}, nil
}
