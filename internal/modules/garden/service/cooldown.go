package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// checkAndSetCooldown takes a short per-user, per-activity lock in
// Redis. Returns true when the activity may proceed. A nil client or a
// zero cooldown disables the check.
func checkAndSetCooldown(ctx context.Context, rdb *redis.Client, userID uuid.UUID, activityType string, cooldown time.Duration) (bool, error) {
	if rdb == nil || cooldown <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("cooldown:user:%s:%s", userID.String(), activityType)

	wasSet, err := rdb.SetNX(ctx, key, "locked", cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check cooldown in redis: %w", err)
	}

	return wasSet, nil
}
