package setnewpassword

import (
	"context"
	"errors"
	e "regain/internal/core/domain/errors"
	"regain/internal/core/domain/logging"
	"regain/internal/core/domain/recovery"
	"regain/internal/core/domain/user"
	"regain/internal/core/services"
	"time"
)

type Input struct {
	Token       recovery.Token
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	tokenRepository recovery.TokenRepository
	passwordHasher  user.PasswordHasher
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenRepository recovery.TokenRepository,
	passwordHasher user.PasswordHasher,
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
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		passwordHasher:  passwordHasher,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	record, err := s.tokenRepository.GetLive(ctx, input.Token, s.now())
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, recovery.ErrInvalidOrExpiredToken) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get recovery token.", logging.Entry("err", err))
		return result, err
	}

	// The policy check must happen before any stored state is touched.
	if err := user.ValidatePassword(input.NewPassword); err != nil {
		return result, err
	}

	u, err := s.userRepository.GetByEmail(ctx, record.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for recovery token.", logging.Entry("email", record.Email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password recovery.",
			logging.Entry("email", record.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	// Consume first: the conditional transition is atomic, so of any number
	// of concurrent redemption attempts exactly one reaches the credential
	// update below.
	_, err = s.tokenRepository.Consume(ctx, input.Token, s.now())
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, recovery.ErrInvalidOrExpiredToken) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not consume recovery token.", logging.Entry("err", err))
		return result, err
	}

	err = s.userRepository.SetPassword(ctx, u.ID, newPasswordHash)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", u.ID),
	)
	return result, nil
}
