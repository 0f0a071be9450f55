package archetypes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	repo       Repository
	archetype  *entities.Archetype
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.repo = NewRedis(s.mockClient)
	s.archetype = &entities.Archetype{
		ID:          "arch-1",
		Name:        "Stormweaver",
		Branches:    entities.DefaultBranches,
		PowerVector: entities.PowerVector{9, 7, 8},
	}
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) toJSON(v any) string {
	data, err := json.Marshal(v)
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepoTestSuite) TestSave() {
	ctx := context.Background()

	// Happy path
	s.mock.ExpectSet("archetype:arch-1", s.toJSON(s.archetype), 0).SetVal("OK")
	s.NoError(s.repo.Save(ctx, s.archetype))

	// Dependency error
	s.mock.ExpectSet("archetype:arch-1", s.toJSON(s.archetype), 0).SetErr(errors.New("redis error"))
	s.True(dnderr.IsUnavailable(s.repo.Save(ctx, s.archetype)))

	// Input validation
	s.True(dnderr.IsInvalidArgument(s.repo.Save(ctx, nil)))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()

	s.mock.ExpectGet("archetype:arch-1").SetVal(s.toJSON(s.archetype))

	got, err := s.repo.Get(ctx, "arch-1")
	s.Require().NoError(err)
	s.Equal(s.archetype, got)

	s.mock.ExpectGet("archetype:missing").RedisNil()

	_, err = s.repo.Get(ctx, "missing")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestRecordBalanceAndHistory() {
	ctx := context.Background()
	record := &entities.BalanceRecord{
		ArchetypeID: "arch-1",
		PowerVector: entities.PowerVector{9, 7, 8},
		Consensus:   true,
		Joy:         0.9959,
		Routine:     "valence",
		CheckedAt:   time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}

	s.mock.ExpectExists("archetype:arch-1").SetVal(1)
	s.mock.ExpectRPush("archetype:arch-1:balance", s.toJSON(record)).SetVal(1)

	s.NoError(s.repo.RecordBalance(ctx, record))

	s.mock.ExpectExists("archetype:arch-1").SetVal(1)
	s.mock.ExpectLRange("archetype:arch-1:balance", 0, -1).SetVal([]string{s.toJSON(record)})

	history, err := s.repo.History(ctx, "arch-1")
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(record, history[0])
}

func (s *RedisRepoTestSuite) TestRecordBalance_UnknownArchetype() {
	ctx := context.Background()

	s.mock.ExpectExists("archetype:ghost").SetVal(0)

	err := s.repo.RecordBalance(ctx, &entities.BalanceRecord{ArchetypeID: "ghost"})
	s.True(dnderr.IsNotFound(err))
}
