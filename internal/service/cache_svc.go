package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cleantube/cleantube-go/internal/model"
)

// AnalysisCacheTTL bounds how long a snapshot is served without a
// re-fetch. Deletions invalidate eagerly; the TTL only covers drift
// from moderation happening outside this service.
const AnalysisCacheTTL = 5 * time.Minute

// CacheService provides a Redis cache-aside layer for analysis
// snapshots.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetAnalysis retrieves a cached snapshot. Returns nil if not cached or
// cache is disabled.
func (c *CacheService) GetAnalysis(ctx context.Context, videoID string) (*model.VideoAnalysis, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, analysisKey(videoID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var va model.VideoAnalysis
	if err := json.Unmarshal(data, &va); err != nil {
		// Corrupt cache entry: drop it, fall through to a fresh fetch.
		c.rdb.Del(ctx, analysisKey(videoID))
		return nil, nil
	}
	return &va, nil
}

// SetAnalysis stores a snapshot.
func (c *CacheService) SetAnalysis(ctx context.Context, videoID string, va *model.VideoAnalysis) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(va)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, analysisKey(videoID), b, AnalysisCacheTTL).Err()
}

// InvalidateAnalysis removes a snapshot (called after deletions).
func (c *CacheService) InvalidateAnalysis(ctx context.Context, videoID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, analysisKey(videoID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func analysisKey(videoID string) string {
	return fmt.Sprintf("analysis:%s", videoID)
}
