package recovery

import (
	c "regain/internal/core/domain/common"
	"time"
)

type ID int64

type Token string

// TokenRecord is one outstanding (or spent) recovery attempt. A record is
// in exactly one of three states: live (now < ExpiresAt, not consumed),
// consumed, or expired. ExpiresAt is set once at creation and never mutated.
type TokenRecord struct {
	ID         ID
	Token      Token
	Email      c.Email
	CreatedAt  time.Time
	ExpiresAt  time.Time
	ConsumedAt c.Optional[time.Time]
}

func (r TokenRecord) IsLive(now time.Time) bool {
	return now.Before(r.ExpiresAt) && !r.ConsumedAt.IsPresent
}

type CreateTokenInput struct {
	Token     Token
	Email     c.Email
	CreatedAt time.Time
	ExpiresAt time.Time
}
