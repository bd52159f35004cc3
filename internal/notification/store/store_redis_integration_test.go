//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"govdesk/internal/notification/store"
	"govdesk/pkg/testutil/containers"
)

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	redis := containers.GetManager().GetRedis(t)
	suite.Run(t, &StoreContractSuite{newStore: func() backend {
		if err := redis.FlushAll(context.Background()); err != nil {
			t.Fatalf("flush redis: %v", err)
		}
		return store.NewRedis(redis.Client, store.WithKeyPrefix("govdesk:test:notifications"))
	}})
}
