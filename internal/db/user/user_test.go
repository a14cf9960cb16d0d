package user

import (
	"context"
	c "regain/internal/core/domain/common"
	"regain/internal/core/domain/user"
	"regain/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
)

var NOW time.Time = time.Date(2022, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser() user.User {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email(EMAIL),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		CreatedAt:    NOW,
	})
	suite.Require().NoError(err)
	return u
}

func (suite *testSuite) TestCreateSuccess() {
	u := suite.createUser()

	assert := suite.Require()
	assert.NotEqual(user.ID(0), u.ID)
	assert.Equal(c.Email(EMAIL), u.Email)
	assert.Equal(user.PasswordHash(PASSWORD_HASH), u.PasswordHash)
	assert.True(NOW.Equal(u.CreatedAt))
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	suite.createUser()

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email(EMAIL),
		PasswordHash: user.PasswordHash("another-hash"),
		CreatedAt:    NOW,
	})
	suite.Require().ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (suite *testSuite) TestGetByID() {
	created := suite.createUser()

	u, err := suite.repo.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(created.ID, u.ID)
	assert.Equal(created.Email, u.Email)

	_, err = suite.repo.GetByID(context.Background(), created.ID+1)
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestGetByEmail() {
	created := suite.createUser()

	u, err := suite.repo.GetByEmail(context.Background(), c.Email(EMAIL))

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(created.ID, u.ID)

	_, err = suite.repo.GetByEmail(context.Background(), c.Email("unknown@test.test"))
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestSetPassword() {
	created := suite.createUser()

	err := suite.repo.SetPassword(context.Background(), created.ID, user.PasswordHash("new-hash"))

	assert := suite.Require()
	assert.NoError(err)

	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.NoError(err)
	assert.Equal(user.PasswordHash("new-hash"), u.PasswordHash)
}

func (suite *testSuite) TestSetPasswordUserDoesNotExist() {
	err := suite.repo.SetPassword(context.Background(), user.ID(123), user.PasswordHash("new-hash"))
	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}
