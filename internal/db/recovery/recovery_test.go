package recovery

import (
	"context"
	c "regain/internal/core/domain/common"
	"regain/internal/core/domain/recovery"
	"regain/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	TOKEN = "test-recovery-token"
	EMAIL = c.Email("test@test.test")
)

const TOKEN_LIFETIME = 30 * time.Minute

var NOW time.Time = time.Date(2022, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxTokenRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxTokenRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxTokenRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createToken(token string) recovery.TokenRecord {
	rec, err := suite.repo.Create(context.Background(), recovery.CreateTokenInput{
		Token:     recovery.Token(token),
		Email:     EMAIL,
		CreatedAt: NOW,
		ExpiresAt: NOW.Add(TOKEN_LIFETIME),
	})
	suite.Require().NoError(err)
	return rec
}

func (suite *testSuite) TestCreateSuccess() {
	rec := suite.createToken(TOKEN)

	assert := suite.Require()
	assert.NotEqual(recovery.ID(0), rec.ID)
	assert.Equal(recovery.Token(TOKEN), rec.Token)
	assert.Equal(EMAIL, rec.Email)
	assert.True(NOW.Equal(rec.CreatedAt))
	assert.True(NOW.Add(TOKEN_LIFETIME).Equal(rec.ExpiresAt))
	assert.False(rec.ConsumedAt.IsPresent)
}

func (suite *testSuite) TestCreateDoesNotCoalesceTokensForSameEmail() {
	first := suite.createToken("token-1")
	second := suite.createToken("token-2")

	assert := suite.Require()
	assert.NotEqual(first.ID, second.ID)

	_, err := suite.repo.GetLive(context.Background(), first.Token, NOW)
	assert.NoError(err)
	_, err = suite.repo.GetLive(context.Background(), second.Token, NOW)
	assert.NoError(err)
}

func (suite *testSuite) TestCreateDuplicateToken() {
	suite.createToken(TOKEN)

	_, err := suite.repo.Create(context.Background(), recovery.CreateTokenInput{
		Token:     recovery.Token(TOKEN),
		Email:     EMAIL,
		CreatedAt: NOW,
		ExpiresAt: NOW.Add(TOKEN_LIFETIME),
	})
	suite.Require().ErrorIs(err, recovery.ErrTokenAlreadyExists)
}

func (suite *testSuite) TestGetLive() {
	created := suite.createToken(TOKEN)

	rec, err := suite.repo.GetLive(context.Background(), created.Token, NOW)

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(created.ID, rec.ID)
	assert.Equal(created.Token, rec.Token)
}

func (suite *testSuite) TestGetLiveExpired() {
	created := suite.createToken(TOKEN)

	_, err := suite.repo.GetLive(context.Background(), created.Token, NOW.Add(TOKEN_LIFETIME+time.Minute))
	suite.Require().ErrorIs(err, recovery.ErrInvalidOrExpiredToken)
}

func (suite *testSuite) TestGetLiveAtExactExpirationIsInvalid() {
	created := suite.createToken(TOKEN)

	_, err := suite.repo.GetLive(context.Background(), created.Token, NOW.Add(TOKEN_LIFETIME))
	suite.Require().ErrorIs(err, recovery.ErrInvalidOrExpiredToken)
}

func (suite *testSuite) TestGetLiveUnknownToken() {
	_, err := suite.repo.GetLive(context.Background(), recovery.Token("unknown"), NOW)
	suite.Require().ErrorIs(err, recovery.ErrInvalidOrExpiredToken)
}

func (suite *testSuite) TestConsume() {
	created := suite.createToken(TOKEN)
	consumedAt := NOW.Add(time.Minute)

	rec, err := suite.repo.Consume(context.Background(), created.Token, consumedAt)

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(created.ID, rec.ID)
	assert.True(rec.ConsumedAt.IsPresent)
	assert.True(consumedAt.Equal(rec.ConsumedAt.Value))

	_, err = suite.repo.GetLive(context.Background(), created.Token, consumedAt)
	assert.ErrorIs(err, recovery.ErrInvalidOrExpiredToken)
}

func (suite *testSuite) TestConsumeIsSingleUse() {
	created := suite.createToken(TOKEN)

	_, err := suite.repo.Consume(context.Background(), created.Token, NOW)
	suite.Require().NoError(err)

	_, err = suite.repo.Consume(context.Background(), created.Token, NOW.Add(time.Minute))
	suite.Require().ErrorIs(err, recovery.ErrInvalidOrExpiredToken)
}

func (suite *testSuite) TestConsumeExpiredToken() {
	created := suite.createToken(TOKEN)

	_, err := suite.repo.Consume(context.Background(), created.Token, NOW.Add(TOKEN_LIFETIME))
	suite.Require().ErrorIs(err, recovery.ErrInvalidOrExpiredToken)
}

func (suite *testSuite) TestDeleteExpired() {
	suite.createToken("token-1")
	suite.createToken("token-2")

	count, err := suite.repo.DeleteExpired(context.Background(), NOW.Add(TOKEN_LIFETIME))

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(int64(2), count)

	count, err = suite.repo.DeleteExpired(context.Background(), NOW.Add(TOKEN_LIFETIME))
	assert.NoError(err)
	assert.Equal(int64(0), count)
}
