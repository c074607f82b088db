package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const unreadTTL = 5 * time.Minute

// UnreadCache keeps per-user unread counters in Redis so that the badge
// endpoint does not hit SQL on every poll. Misses fall through to the
// repository; writes here are best-effort.
type UnreadCache struct {
	rdb *redis.Client
}

func NewUnreadCache(rdb *redis.Client) *UnreadCache {
	return &UnreadCache{rdb: rdb}
}

func unreadKey(userID int) string {
	return fmt.Sprintf("unread:%d", userID)
}

func (c *UnreadCache) Get(ctx context.Context, userID int) (int, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	val, err := c.rdb.Get(ctx, unreadKey(userID)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *UnreadCache) Set(ctx context.Context, userID, count int) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, unreadKey(userID), count, unreadTTL).Err(); err != nil {
		log.Printf("unread cache set user=%d: %v", userID, err)
	}
}

func (c *UnreadCache) Invalidate(ctx context.Context, userID int) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, unreadKey(userID)).Err(); err != nil {
		log.Printf("unread cache invalidate user=%d: %v", userID, err)
	}
}
