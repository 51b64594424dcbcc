package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/fedotovkv/trademate_bot/config"
	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/utils"
	"github.com/redis/go-redis/v9"
)

const (
	portfolioSummaryKey = "portfolio:summary"
	sipSummaryKey       = "sip:summary"
)

var ErrNotFound = errors.New("error not found in cache")

type RedisCache struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisCache(redisClient *redis.Client, cfg *config.Config) *RedisCache {
	return &RedisCache{redis: redisClient, cfg: cfg}
}

func (r *RedisCache) GetPortfolioSummary(ctx context.Context) (model.PortfolioSummary, error) {
	summary := model.PortfolioSummary{}
	if err := r.get(ctx, portfolioSummaryKey, &summary); err != nil {
		return model.PortfolioSummary{}, err
	}
	return summary, nil
}

func (r *RedisCache) SetPortfolioSummary(ctx context.Context, summary model.PortfolioSummary) error {
	return r.set(ctx, portfolioSummaryKey, summary)
}

func (r *RedisCache) FlushPortfolioSummary(ctx context.Context) error {
	return r.flush(ctx, portfolioSummaryKey)
}

func (r *RedisCache) GetSipSummary(ctx context.Context) (model.SIPSummary, error) {
	summary := model.SIPSummary{}
	if err := r.get(ctx, sipSummaryKey, &summary); err != nil {
		return model.SIPSummary{}, err
	}
	return summary, nil
}

func (r *RedisCache) SetSipSummary(ctx context.Context, summary model.SIPSummary) error {
	return r.set(ctx, sipSummaryKey, summary)
}

func (r *RedisCache) FlushSipSummary(ctx context.Context) error {
	return r.flush(ctx, sipSummaryKey)
}

func (r *RedisCache) get(ctx context.Context, key string, dst any) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	res, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return err
	}

	if err := json.Unmarshal([]byte(res), dst); err != nil {
		slog.Error(
			"can't unmarshall cached value",
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.String("key", key),
			slog.String("resultFromRedis", res),
		)
		return errors.New("can't unmarshall cached value")
	}

	return nil
}

func (r *RedisCache) set(ctx context.Context, key string, value any) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	raw, err := json.Marshal(value)
	if err != nil {
		slog.Error(
			"can't marshall value for cache",
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.String("key", key),
		)
		return errors.New("can't marshall value for cache")
	}

	if _, err := r.redis.Set(ctx, key, raw, r.cfg.Cache.SummaryExpiration).Result(); err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return err
	}

	return nil
}

func (r *RedisCache) flush(ctx context.Context, key string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	if _, err := r.redis.Del(ctx, key).Result(); err != nil {
		slog.Error("failed on redis.Del", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return err
	}

	return nil
}
