package recovery

import (
	"context"
	"errors"
	c "regain/internal/core/domain/common"
	e "regain/internal/core/domain/errors"
	"regain/internal/core/domain/recovery"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const TOKEN_CONSTRAINT_NAME = "recovery_token_token_idx"

type PgxTokenRepository struct {
	pool *pgxpool.Pool
}

func NewPgxTokenRepository(pool *pgxpool.Pool) *PgxTokenRepository {
	if pool == nil {
		panic(e.NewNilArgumentError("pool"))
	}
	return &PgxTokenRepository{pool: pool}
}

func (r *PgxTokenRepository) Create(
	ctx context.Context,
	input recovery.CreateTokenInput,
) (rec recovery.TokenRecord, err error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO recovery_token (token, email, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, token, email, created_at, expires_at, consumed_at`,
		string(input.Token),
		string(input.Email),
		input.CreatedAt,
		input.ExpiresAt,
	)
	rec, err = scanTokenRecord(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == TOKEN_CONSTRAINT_NAME {
			return rec, recovery.ErrTokenAlreadyExists
		}
	}
	return rec, err
}

func (r *PgxTokenRepository) GetLive(
	ctx context.Context,
	token recovery.Token,
	now time.Time,
) (rec recovery.TokenRecord, err error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, token, email, created_at, expires_at, consumed_at
		 FROM recovery_token
		 WHERE token = $1 AND expires_at > $2 AND consumed_at IS NULL`,
		string(token),
		now,
	)
	rec, err = scanTokenRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, recovery.ErrInvalidOrExpiredToken
	}
	return rec, err
}

// Consume is a single conditional UPDATE, so two concurrent redemption
// attempts for the same token cannot both observe it live.
func (r *PgxTokenRepository) Consume(
	ctx context.Context,
	token recovery.Token,
	now time.Time,
) (rec recovery.TokenRecord, err error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE recovery_token SET consumed_at = $2
		 WHERE token = $1 AND expires_at > $2 AND consumed_at IS NULL
		 RETURNING id, token, email, created_at, expires_at, consumed_at`,
		string(token),
		now,
	)
	rec, err = scanTokenRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, recovery.ErrInvalidOrExpiredToken
	}
	return rec, err
}

func (r *PgxTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	commandTag, err := r.pool.Exec(
		ctx,
		`DELETE FROM recovery_token WHERE expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}

func scanTokenRecord(row pgx.Row) (rec recovery.TokenRecord, err error) {
	var id int64
	var token, email string
	var consumedAt pgtype.Timestamptz
	err = row.Scan(&id, &token, &email, &rec.CreatedAt, &rec.ExpiresAt, &consumedAt)
	if err != nil {
		return rec, err
	}
	rec.ID = recovery.ID(id)
	rec.Token = recovery.Token(token)
	rec.Email = c.Email(email)
	rec.ConsumedAt = c.NewOptional(consumedAt.Time, consumedAt.Status == pgtype.Present)
	return rec, nil
}
