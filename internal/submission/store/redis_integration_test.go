//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"govdesk/internal/submission/models"
	"govdesk/internal/submission/store"
	"govdesk/pkg/platform/sentinel"
	"govdesk/pkg/testutil/containers"
)

type RedisAdapterSuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	adapter *store.RedisAdapter
}

func TestRedisAdapterSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisAdapterSuite))
}

func (s *RedisAdapterSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.adapter = store.NewRedisAdapter(s.redis.Client, store.WithRedisKey("govdesk:test:submissions"))
}

func (s *RedisAdapterSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisAdapterSuite) TestMissingKeyIsEmpty() {
	subs, err := s.adapter.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(subs)
}

func (s *RedisAdapterSuite) TestRoundTripIsByteStable() {
	ctx := context.Background()
	s.Require().NoError(s.adapter.Save(ctx, sampleSubmissions()))
	first, err := s.redis.Client.Get(ctx, "govdesk:test:submissions").Bytes()
	s.Require().NoError(err)

	loaded, err := s.adapter.Load(ctx)
	s.Require().NoError(err)
	s.Require().Len(loaded, 2)
	s.Equal(models.StatusUnderReview, loaded[1].Status)

	s.Require().NoError(s.adapter.Save(ctx, loaded))
	second, err := s.redis.Client.Get(ctx, "govdesk:test:submissions").Bytes()
	s.Require().NoError(err)
	s.Equal(string(first), string(second))
}

func (s *RedisAdapterSuite) TestCorruptValue() {
	ctx := context.Background()
	s.Require().NoError(s.redis.Client.Set(ctx, "govdesk:test:submissions", "{broken", 0).Err())

	_, err := s.adapter.Load(ctx)
	s.ErrorIs(err, sentinel.ErrCorrupt)
}

func (s *RedisAdapterSuite) TestStoreOverRedis() {
	ctx := at(t0)
	st, err := store.Open(ctx, s.adapter)
	s.Require().NoError(err)
	defer st.Close()

	sub, err := st.CreateSubmission(ctx, "Land Record", 11, map[string]any{"email": "a@example.in"})
	s.Require().NoError(err)
	s.Require().NoError(st.MarkViewed(ctx, sub.ID, "admin"))

	other, err := store.Open(ctx, s.adapter)
	s.Require().NoError(err)
	defer other.Close()
	got, err := other.GetSubmission(ctx, sub.ID)
	s.Require().NoError(err)
	s.Equal([]string{"admin"}, got.ViewedBy)
}
