package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Failed-login lockout. Every function is a no-op when redis is not
// configured, so the API stays usable in minimal deployments.

const failedLoginThreshold = 5

func loginKey(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}

func IsLoginLocked(ctx context.Context, rdb *redis.Client, email string) (bool, error) {
	if rdb == nil {
		return false, nil
	}

	attempts, err := rdb.Get(ctx, loginKey(email)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check login attempts in redis: %w", err)
	}

	return attempts >= failedLoginThreshold, nil
}

func RecordFailedLogin(ctx context.Context, rdb *redis.Client, email string, window time.Duration) {
	if rdb == nil {
		return
	}

	key := loginKey(email)
	attempts, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("failed to record login attempt: %v", err)
		return
	}

	// First failure starts the window; later ones ride it out.
	if attempts == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			log.Printf("failed to set login attempt expiry: %v", err)
		}
	}
}

func ClearLoginLock(ctx context.Context, rdb *redis.Client, email string) {
	if rdb == nil {
		return
	}

	if err := rdb.Del(ctx, loginKey(email)).Err(); err != nil {
		log.Printf("failed to clear login attempts: %v", err)
	}
}
