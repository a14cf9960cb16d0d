package services

import (
	"regain/internal/app/deps"
	"regain/internal/core/services"
	getuserbysessiontoken "regain/internal/core/services/get_user_by_session_token"
	loginwithemail "regain/internal/core/services/log_in_with_email"
	sendrecoverytoken "regain/internal/core/services/send_recovery_token"
	setnewpassword "regain/internal/core/services/set_new_password"
	signupwithemail "regain/internal/core/services/sign_up_with_email"
)

type Services struct {
	SignUpWithEmail       services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail        services.Service[loginwithemail.Input, loginwithemail.Result]
	GetUserBySessionToken services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	SendRecoveryToken     services.Service[sendrecoverytoken.Input, sendrecoverytoken.Result]
	SetNewPassword        services.Service[setnewpassword.Input, setnewpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogInWithEmail = loginwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.SessionRepository,
		deps.PasswordHasher,
		deps.SessionTokenGenerator,
		deps.Now,
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.SendRecoveryToken = sendrecoverytoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.TokenRepository,
		deps.TokenGenerator,
		deps.TokenSender,
		deps.Config.RecoveryTokenLifetime(),
		deps.Now,
	)
	s.SetNewPassword = setnewpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.TokenRepository,
		deps.PasswordHasher,
		deps.Now,
	)

	return s
}
