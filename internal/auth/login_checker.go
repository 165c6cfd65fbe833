package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (lc *LoginChecker) LoggedUserID(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, ErrNotLoggedIn
	}

	cmd := lc.redisClient.HGetAll(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		return 0, err
	}

	session := cmd.Val()
	if len(session) == 0 {
		return 0, ErrNotLoggedIn
	}

	createdAtUnix, err := strconv.ParseInt(session[fieldCreatedAt], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse session created at: %w", err)
	}
	if lc.now().Sub(time.Unix(createdAtUnix, 0)) > lc.ttl {
		return 0, ErrSessionExpired
	}

	userID, err := strconv.Atoi(session[fieldUserID])
	if err != nil {
		return 0, fmt.Errorf("parse session user id: %w", err)
	}

	return userID, nil
}
