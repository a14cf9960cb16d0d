package recovery

import (
	"context"
	"fmt"
	c "regain/internal/core/domain/common"
	"regain/internal/core/domain/user"
	"sync"
	"time"
)

type FakeTokenGenerator struct {
	Token Token
}

func NewFakeTokenGenerator(token string) *FakeTokenGenerator {
	return &FakeTokenGenerator{Token: Token(token)}
}

func (g *FakeTokenGenerator) GenerateRecoveryToken() Token {
	return g.Token
}

type FakeTokenSender struct {
	Sent        []SentToken
	ReturnError bool
	lock        sync.Mutex
}

type SentToken struct {
	User  user.User
	Token Token
}

func NewFakeTokenSender() *FakeTokenSender {
	return &FakeTokenSender{}
}

func (s *FakeTokenSender) SendToken(ctx context.Context, u user.User, token Token) error {
	if s.ReturnError {
		return fmt.Errorf("could not send recovery token to user %d", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentToken{User: u, Token: token})
	return nil
}

func (s *FakeTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakeTokenSender) LastSent() SentToken {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakeTokenRepository struct {
	Records     []TokenRecord
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeTokenRepository() *FakeTokenRepository {
	return &FakeTokenRepository{Records: make([]TokenRecord, 0, 10)}
}

func (r *FakeTokenRepository) Create(ctx context.Context, input CreateTokenInput) (rec TokenRecord, err error) {
	if r.ReturnError {
		return rec, fmt.Errorf("could not create recovery token for %s", input.Email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, rec := range r.Records {
		if rec.Token == input.Token {
			return rec, ErrTokenAlreadyExists
		}
		maxID = rec.ID
	}
	rec = TokenRecord{
		ID:        maxID + 1,
		Token:     input.Token,
		Email:     input.Email,
		CreatedAt: input.CreatedAt,
		ExpiresAt: input.ExpiresAt,
	}
	r.Records = append(r.Records, rec)
	return rec, nil
}

func (r *FakeTokenRepository) GetLive(ctx context.Context, token Token, now time.Time) (rec TokenRecord, err error) {
	if r.ReturnError {
		return rec, fmt.Errorf("could not get recovery token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, rec := range r.Records {
		if rec.Token == token && rec.IsLive(now) {
			return rec, nil
		}
	}
	return rec, ErrInvalidOrExpiredToken
}

func (r *FakeTokenRepository) Consume(ctx context.Context, token Token, now time.Time) (rec TokenRecord, err error) {
	if r.ReturnError {
		return rec, fmt.Errorf("could not consume recovery token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, rec := range r.Records {
		if rec.Token == token && rec.IsLive(now) {
			r.Records[ix].ConsumedAt = c.NewOptional(now, true)
			return r.Records[ix], nil
		}
	}
	return rec, ErrInvalidOrExpiredToken
}

func (r *FakeTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (count int64, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	kept := r.Records[:0]
	for _, rec := range r.Records {
		if rec.ExpiresAt.After(now) {
			kept = append(kept, rec)
		} else {
			count++
		}
	}
	r.Records = kept
	return count, nil
}

func (r *FakeTokenRepository) RecordCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.Records)
}
