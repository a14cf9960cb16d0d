package user

import (
	"context"
	"time"
)

type SessionToken string

type SessionTokenGenerator interface {
	GenerateSessionToken() SessionToken
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
}
