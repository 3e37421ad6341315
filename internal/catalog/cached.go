package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/plastron-io/plastron-api/internal/schedule"
)

// CacheRecorder receives hit/miss observations from the cached source.
type CacheRecorder interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	ObserveCacheWrite(duration time.Duration)
}

// CachedSource is a read-through cache in front of another Source.
// Catalog pages change slowly relative to request volume, so scraped
// section lists are held in Redis for a configurable TTL. Cache
// failures degrade to a direct fetch rather than failing the request.
type CachedSource struct {
	inner   Source
	client  *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
	metrics CacheRecorder
}

// NewCachedSource wraps a Source with Redis caching.
func NewCachedSource(inner Source, client *redis.Client, ttl time.Duration, logger *zap.Logger, metrics CacheRecorder) *CachedSource {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{inner: inner, client: client, ttl: ttl, logger: logger, metrics: metrics}
}

// Sections returns the cached section list when present, otherwise
// delegates to the wrapped source and stores the result.
func (s *CachedSource) Sections(ctx context.Context, courseID string) ([]schedule.Section, error) {
	key := s.key(courseID)

	start := time.Now()
	raw, err := s.client.Get(ctx, key).Bytes()
	lookup := time.Since(start)
	if err == nil {
		var sections []schedule.Section
		if err := json.Unmarshal(raw, &sections); err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true, lookup)
			}
			return sections, nil
		}
		s.logger.Warn("catalog cache entry corrupt", zap.String("key", key))
	} else if err != redis.Nil {
		s.logger.Warn("catalog cache get failed", zap.String("key", key), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(false, lookup)
	}

	sections, err := s.inner.Sections(ctx, courseID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(sections)
	if err != nil {
		return sections, nil
	}
	writeStart := time.Now()
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Warn("catalog cache set failed", zap.String("key", key), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(writeStart))
	}
	return sections, nil
}

func (s *CachedSource) key(courseID string) string {
	return fmt.Sprintf("catalog:%s:%s", ClosestTermID(time.Now()), strings.ToUpper(strings.TrimSpace(courseID)))
}
