package sendrecoverytoken

import (
	"context"
	"errors"
	c "regain/internal/core/domain/common"
	e "regain/internal/core/domain/errors"
	"regain/internal/core/domain/logging"
	"regain/internal/core/domain/recovery"
	"regain/internal/core/domain/user"
	"regain/internal/core/services"
	"time"
)

type Input struct {
	Email c.Email
}

type Result struct {
	Token recovery.Token
}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	tokenRepository recovery.TokenRepository
	tokenGenerator  recovery.TokenGenerator
	tokenSender     recovery.TokenSender
	tokenLifetime   time.Duration
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenRepository recovery.TokenRepository,
	tokenGenerator recovery.TokenGenerator,
	tokenSender recovery.TokenSender,
	tokenLifetime time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if tokenLifetime <= 0 {
		panic(e.NewInvalidStateError("tokenLifetime must be positive"))
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		tokenGenerator:  tokenGenerator,
		tokenSender:     tokenSender,
		tokenLifetime:   tokenLifetime,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password recovery.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password recovery.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	now := s.now()
	record, err := s.tokenRepository.Create(ctx, recovery.CreateTokenInput{
		Token:     s.tokenGenerator.GenerateRecoveryToken(),
		Email:     u.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenLifetime),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create recovery token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The record stays persisted on delivery failure, the caller treats
	// issuance as failed and may simply request a new token.
	err = s.tokenSender.SendToken(ctx, u, record.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send recovery token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, recovery.ErrDeliveryFailed
	}

	s.log.Info(
		ctx,
		"Recovery token has been sent to the user.",
		logging.Entry("userID", u.ID),
		logging.Entry("expiresAt", record.ExpiresAt),
	)
	return Result{Token: record.Token}, nil
}
