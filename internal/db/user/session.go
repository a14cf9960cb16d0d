package user

import (
	"context"
	"errors"
	e "regain/internal/core/domain/errors"
	"regain/internal/core/domain/user"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PgxSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgxSessionRepository(pool *pgxpool.Pool) *PgxSessionRepository {
	if pool == nil {
		panic(e.NewNilArgumentError("pool"))
	}
	return &PgxSessionRepository{pool: pool}
}

func (r *PgxSessionRepository) Create(ctx context.Context, input user.CreateSessionInput) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO session (token, user_id, created_at) VALUES ($1, $2, $3)`,
		string(input.Token),
		int64(input.UserID),
		input.CreatedAt,
	)
	return err
}

func (r *PgxSessionRepository) GetUserByToken(ctx context.Context, token user.SessionToken) (u user.User, err error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT u.id, u.email, u.password_hash, u.created_at
		 FROM "user" u JOIN session s ON s.user_id = u.id
		 WHERE s.token = $1`,
		string(token),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}
