package workouts

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

const catalogVersionKey = "workoutware-exercise-catalog-version"

// CatalogVersion is a counter shared by all instances. It is bumped on every
// catalog write and is part of the local cache key, so other instances stop
// serving stale lists.
type CatalogVersion struct {
	redisClient *redis.Client
}

func NewCatalogVersion(redisClient *redis.Client) *CatalogVersion {
	return &CatalogVersion{
		redisClient: redisClient,
	}
}

func (cv *CatalogVersion) Current(ctx context.Context) (int64, error) {
	version, err := cv.redisClient.Get(ctx, catalogVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (cv *CatalogVersion) Bump(ctx context.Context) (int64, error) {
	return cv.redisClient.Incr(ctx, catalogVersionKey).Result()
}
