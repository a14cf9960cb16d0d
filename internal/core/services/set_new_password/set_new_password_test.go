package setnewpassword

import (
	"context"
	c "regain/internal/core/domain/common"
	"regain/internal/core/domain/logging"
	"regain/internal/core/domain/recovery"
	"regain/internal/core/domain/user"
	"regain/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = c.Email("alice@example.com")
	TOKEN        = recovery.Token("test-recovery-token")
	OLD_PASSWORD = user.RawPassword("old-password-1")
	NEW_PASSWORD = user.RawPassword("longenough1")
)

const TOKEN_LIFETIME = 30 * time.Minute

var ISSUED_AT time.Time = time.Date(2022, 6, 15, 12, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger          *logging.FakeLogger
	UserRepository  *user.FakeUserRepository
	TokenRepository *recovery.FakeTokenRepository
	PasswordHasher  *user.FakePasswordHasher
	Now             time.Time
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.TokenRepository = recovery.NewFakeTokenRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Now = ISSUED_AT
}

func TestSetNewPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createService() services.Service[Input, Result] {
	return New(
		suite.Logger,
		suite.UserRepository,
		suite.TokenRepository,
		suite.PasswordHasher,
		func() time.Time { return suite.Now },
	)
}

func (suite *testSuite) createUser() user.User {
	hash, err := suite.PasswordHasher.HashPassword(OLD_PASSWORD)
	suite.Require().NoError(err)
	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:        EMAIL,
		PasswordHash: hash,
		CreatedAt:    ISSUED_AT,
	})
	suite.Require().NoError(err)
	return u
}

func (suite *testSuite) createToken() recovery.TokenRecord {
	record, err := suite.TokenRepository.Create(context.Background(), recovery.CreateTokenInput{
		Token:     TOKEN,
		Email:     EMAIL,
		CreatedAt: ISSUED_AT,
		ExpiresAt: ISSUED_AT.Add(TOKEN_LIFETIME),
	})
	suite.Require().NoError(err)
	return record
}

func (suite *testSuite) assertPasswordIs(expected user.RawPassword) {
	suite.T().Helper()
	u, err := suite.UserRepository.GetByEmail(context.Background(), EMAIL)
	suite.Require().NoError(err)
	suite.Require().True(suite.PasswordHasher.ValidatePassword(expected, u.PasswordHash))
}

func (suite *testSuite) TestSuccess() {
	suite.createUser()
	suite.createToken()
	service := suite.createService()

	_, err := service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.NoError(err)
	suite.assertPasswordIs(NEW_PASSWORD)

	u, err := suite.UserRepository.GetByEmail(context.Background(), EMAIL)
	assert.NoError(err)
	assert.False(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, u.PasswordHash))
	assert.True(suite.TokenRepository.Records[0].ConsumedAt.IsPresent)
}

func (suite *testSuite) TestSuccessJustBeforeExpiration() {
	suite.createUser()
	suite.createToken()
	suite.Now = ISSUED_AT.Add(29 * time.Minute)
	service := suite.createService()

	_, err := service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	suite.Require().NoError(err)
	suite.assertPasswordIs(NEW_PASSWORD)
}

func (suite *testSuite) TestExpiredToken() {
	suite.createUser()
	suite.createToken()
	suite.Now = ISSUED_AT.Add(31 * time.Minute)
	service := suite.createService()

	_, err := service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	suite.Require().ErrorIs(err, recovery.ErrInvalidOrExpiredToken)
	suite.assertPasswordIs(OLD_PASSWORD)
}

func (suite *testSuite) TestTokenExpiringExactlyNowIsInvalid() {
	suite.createUser()
	suite.createToken()
	suite.Now = ISSUED_AT.Add(TOKEN_LIFETIME)
	service := suite.createService()

	_, err := service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	suite.Require().ErrorIs(err, recovery.ErrInvalidOrExpiredToken)
}

func (suite *testSuite) TestUnknownToken() {
	suite.createUser()
	service := suite.createService()

	_, err := service.Run(context.Background(), Input{Token: "unknown", NewPassword: NEW_PASSWORD})

	suite.Require().ErrorIs(err, recovery.ErrInvalidOrExpiredToken)
	suite.assertPasswordIs(OLD_PASSWORD)
}

func (suite *testSuite) TestExpiredTokenTakesPrecedenceOverWeakPassword() {
	suite.createUser()
	suite.createToken()
	suite.Now = ISSUED_AT.Add(31 * time.Minute)
	service := suite.createService()

	_, err := service.Run(context.Background(), Input{Token: TOKEN, NewPassword: "short"})

	suite.Require().ErrorIs(err, recovery.ErrInvalidOrExpiredToken)
}

func (suite *testSuite) TestWeakPassword() {
	cases := []struct {
		id       string
		password user.RawPassword
	}{
		{id: "empty", password: ""},
		{id: "one-char", password: "a"},
		{id: "seven-chars", password: "1234567"},
	}

	for _, testcase := range cases {
		suite.Run(testcase.id, func() {
			suite.SetupTest()
			suite.createUser()
			suite.createToken()
			service := suite.createService()

			_, err := service.Run(context.Background(), Input{Token: TOKEN, NewPassword: testcase.password})

			assert := suite.Require()
			assert.ErrorIs(err, user.ErrPasswordTooWeak)
			suite.assertPasswordIs(OLD_PASSWORD)
			assert.False(suite.TokenRepository.Records[0].ConsumedAt.IsPresent)
		})
	}
}

func (suite *testSuite) TestTokenIsSingleUse() {
	suite.createUser()
	suite.createToken()
	service := suite.createService()

	_, err := service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})
	suite.Require().NoError(err)

	_, err = service.Run(context.Background(), Input{Token: TOKEN, NewPassword: "another-password"})
	suite.Require().ErrorIs(err, recovery.ErrInvalidOrExpiredToken)
	suite.assertPasswordIs(NEW_PASSWORD)
}

func (suite *testSuite) TestUserDoesNotExist() {
	suite.createToken()
	service := suite.createService()

	_, err := service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}
