package progress

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	dirtyUsersKey       = "workoutware-progress-dirty"
	defaultRebuildBatch = 50

	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
	TriggerAdmin     = "admin"
)

type rebuilder interface {
	Rebuild(ctx context.Context, userID int, periods []Period, trigger string) (int, error)
}

// Rebuilder keeps stored progress up to date in the background. Writes mark
// the user dirty in a Redis set, each pass pops a batch and rebuilds it.
type Rebuilder struct {
	redisClient *redis.Client
	service     rebuilder
	batch       int64
}

func NewRebuilder(redisClient *redis.Client, service rebuilder) *Rebuilder {
	return &Rebuilder{
		redisClient: redisClient,
		service:     service,
		batch:       defaultRebuildBatch,
	}
}

func (rb *Rebuilder) MarkDirty(ctx context.Context, userID int) error {
	return rb.redisClient.SAdd(ctx, dirtyUsersKey, userID).Err()
}

// RunOnce drains the dirty set batch by batch and returns the number of users
// rebuilt. Failed users go back to the set once the drain is over, so they
// wait for the next pass.
func (rb *Rebuilder) RunOnce(ctx context.Context) int {
	rebuilt := 0
	var failed []any
	defer func() {
		if len(failed) == 0 {
			return
		}
		if err := rb.redisClient.SAdd(ctx, dirtyUsersKey, failed...).Err(); err != nil {
			log.Errorf("progress rebuilder: re-mark %d failed users: %s", len(failed), err)
		}
	}()

	for {
		members, err := rb.redisClient.SPopN(ctx, dirtyUsersKey, rb.batch).Result()
		if err != nil {
			log.Errorf("progress rebuilder: pop dirty users: %s", err)
			return rebuilt
		}
		if len(members) == 0 {
			return rebuilt
		}

		for _, member := range members {
			userID, err := strconv.Atoi(member)
			if err != nil {
				log.Warnf("progress rebuilder: invalid user id in dirty set: %s", member)
				continue
			}
			if _, err := rb.service.Rebuild(ctx, userID, []Period{PeriodWeekly}, TriggerScheduled); err != nil {
				log.Errorf("progress rebuilder: %s", err)
				failed = append(failed, userID)
				continue
			}
			rebuilt++
		}

		if int64(len(members)) < rb.batch {
			return rebuilt
		}
	}
}

func (rb *Rebuilder) Run(ctx context.Context, interval time.Duration) {
	log.Debugf("progress rebuilder started, interval: %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if rebuilt := rb.RunOnce(ctx); rebuilt > 0 {
				log.Debugf("progress rebuilder: rebuilt %d users", rebuilt)
			}
		case <-ctx.Done():
			log.Debugln("progress rebuilder stopped")
			return
		}
	}
}
