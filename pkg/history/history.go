package history

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/config"
	"github.com/ekaya-inc/ekaya-bi/pkg/database"
)

// New builds the store selected by cfg.Backend. The returned func releases its connections.
func New(ctx context.Context, cfg *config.HistoryConfig, logger *zap.Logger) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.MaxEntries), noop, nil
	case "redis":
		client, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		if client == nil {
			return nil, noop, fmt.Errorf("history backend redis requires redis_addr")
		}
		return NewRedisStore(client, cfg.RedisKey, cfg.MaxEntries, logger), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}
