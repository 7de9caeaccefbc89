package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/models"
)

// RedisStore keeps history in a Redis list, newest at the head, so it survives restarts
// and is shared between server instances.
type RedisStore struct {
	client     *redis.Client
	key        string
	maxEntries int
	logger     *zap.Logger
}

// NewRedisStore stores entries under key and trims the list to maxEntries.
func NewRedisStore(client *redis.Client, key string, maxEntries int, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client:     client,
		key:        key,
		maxEntries: maxEntries,
		logger:     logger.Named("history"),
	}
}

func (s *RedisStore) Record(ctx context.Context, entry *models.QueryHistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, data)
	if s.maxEntries > 0 {
		pipe.LTrim(ctx, s.key, 0, int64(s.maxEntries-1))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record history entry: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, filters models.QueryHistoryFilters) ([]*models.QueryHistoryEntry, error) {
	limit := effectiveLimit(filters.Limit, s.maxEntries)

	raw, err := s.client.LRange(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]*models.QueryHistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.QueryHistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// A corrupt entry should not hide the rest of the history.
			s.logger.Warn("Skipping unreadable history entry", zap.Error(err))
			continue
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
