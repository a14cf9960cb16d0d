package recovery

import (
	"context"
	"regain/internal/core/domain/user"
)

type TokenSender interface {
	SendToken(ctx context.Context, u user.User, token Token) error
}
