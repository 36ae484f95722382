// Package bootstrap wires storage, the like counter and the services from configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"board/internal/cache"
	"board/internal/config"
	"board/internal/database"
	"board/internal/likes"
	"board/internal/observability"
	"board/internal/repository"
	"board/internal/service"

	"github.com/redis/go-redis/v9"
)

// Options control runtime initialization behavior.
type Options struct {
	// RequireRedis fails initialization when Redis is unreachable. Production
	// always requires it.
	RequireRedis bool
}

// Runtime holds the connected stores and the services built on them.
type Runtime struct {
	DB       *database.Handles
	Redis    *redis.Client // nil when like counts live in process memory
	Counter  likes.Counter
	Posts    *service.PostService
	Likes    *service.LikeService
	Comments repository.CommentRepository
}

// InitRuntime connects to the database and Redis and builds the services.
// Outside production an unreachable Redis falls back to in-process counters.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var client *redis.Client
	if cfg.RedisURL != "" {
		client, err = cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			if opts.RequireRedis || cfg.IsProduction() {
				_ = db.Close()
				return nil, fmt.Errorf("redis connection failed: %w", err)
			}
			observability.Logger.WarnContext(ctx, "Redis unavailable, like counts live in process memory",
				slog.String("error", err.Error()),
			)
			client = nil
		}
	}

	return NewRuntime(cfg, db, client), nil
}

// NewRuntime builds the services over already connected stores. A nil client
// selects the in-process like counter.
func NewRuntime(cfg *config.Config, db *database.Handles, client *redis.Client) *Runtime {
	var counter likes.Counter
	if client != nil {
		counter = likes.NewRedisCounter(client, cfg.LikeKeyPrefix)
	} else {
		counter = likes.NewMemoryCounter()
	}

	postRepo := repository.NewPostRepository(db.Primary, db.Reader())
	return &Runtime{
		DB:       db,
		Redis:    client,
		Counter:  counter,
		Posts:    service.NewPostService(postRepo, repository.NewTagRepository(db.Primary), repository.NewTransactor(db.Primary), counter, cfg.PageMaxSize),
		Likes:    service.NewLikeService(postRepo, counter),
		Comments: repository.NewCommentRepository(db.Primary),
	}
}

// Close releases the Redis client and database connections.
func (r *Runtime) Close() error {
	var errs []error
	if r.Redis != nil {
		errs = append(errs, r.Redis.Close())
	}
	if r.DB != nil {
		errs = append(errs, r.DB.Close())
	}
	return errors.Join(errs...)
}
