package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/loanboard/internal/metrics"
)

const (
	KeyPrefix = "loanboard:dashboard:"
	// GenerationKey counts invalidations. It sits outside KeyPrefix so Invalidate never deletes it.
	GenerationKey = "loanboard:dashboard_generation"
	DefaultTTL    = 10 * time.Minute
	dayLayout     = "2006-01-02"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// ConnectRedis opens a client and fails fast when the server does not answer a ping.
func ConnectRedis(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  time.Second,
		ReadTimeout:  400 * time.Millisecond,
		WriteTimeout: 400 * time.Millisecond,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			_ = cn.ClientSetName(ctx, "loanboard").Err()
			return nil
		},
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("can't ping redis at %s: %w", opts.Addr, err)
	}
	zap.L().Info("connected to redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return rdb, nil
}

func Key(day time.Time) string {
	return KeyPrefix + day.Format(dayLayout)
}

// Redis stores dashboard snapshots as JSON, one key per calendar day.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Get returns nil without error on a miss.
func (r *Redis) Get(ctx context.Context, day time.Time) (*metrics.Dashboard, error) {
	raw, err := r.client.Get(ctx, Key(day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't read snapshot: %w", err)
	}

	var dash metrics.Dashboard
	if err := json.Unmarshal(raw, &dash); err != nil {
		zap.L().Warn("dropping unreadable snapshot", zap.String("key", Key(day)), zap.Error(err))
		_ = r.client.Del(ctx, Key(day)).Err()
		return nil, nil
	}
	return &dash, nil
}

// Generation returns the invalidation counter, 0 before the first invalidation.
func (r *Redis) Generation(ctx context.Context) (int64, error) {
	gen, err := readGeneration(r.client.Get(ctx, GenerationKey))
	if err != nil {
		return 0, fmt.Errorf("can't read snapshot generation: %w", err)
	}
	return gen, nil
}

func readGeneration(cmd *redis.StringCmd) (int64, error) {
	gen, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set writes the snapshot unless the generation has moved past generation. The check and the write
// run in one WATCH transaction, so an Invalidate in between aborts the write. It reports whether the
// snapshot was stored.
func (r *Redis) Set(ctx context.Context, day time.Time, dash *metrics.Dashboard, generation int64) (bool, error) {
	raw, err := json.Marshal(dash)
	if err != nil {
		return false, fmt.Errorf("can't encode snapshot: %w", err)
	}

	stored := false
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(tx.Get(ctx, GenerationKey))
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(day), raw, r.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, GenerationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("can't write snapshot: %w", err)
	}
	return stored, nil
}

// Invalidate bumps the generation and drops every stored snapshot.
func (r *Redis) Invalidate(ctx context.Context) error {
	if err := r.client.Incr(ctx, GenerationKey).Err(); err != nil {
		return fmt.Errorf("can't bump snapshot generation: %w", err)
	}

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, KeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("can't scan snapshots: %w", err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("can't delete snapshots: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Noop is used when no redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, time.Time) (*metrics.Dashboard, error) { return nil, nil }
func (Noop) Generation(context.Context) (int64, error) { return 0, nil }
func (Noop) Set(context.Context, time.Time, *metrics.Dashboard, int64) (bool, error) { return false, nil }
func (Noop) Invalidate(context.Context) error { return nil }
