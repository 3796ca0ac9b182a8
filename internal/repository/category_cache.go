package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
)

const categoryListKey = "categories:all"

type cachedCategoryRepository struct {
	CategoryRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedCategoryRepository wraps next with a Redis read-through cache for
// the category list. Cache failures fall through to next.
func NewCachedCategoryRepository(next CategoryRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) CategoryRepository {
	if client == nil {
		return next
	}
	return &cachedCategoryRepository{
		CategoryRepository: next,
		client:             client,
		ttl:                ttl,
		logger:             logger,
	}
}

func (r *cachedCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	raw, err := r.client.Get(ctx, categoryListKey).Bytes()
	switch {
	case err == nil:
		var categories []domain.Category
		if jsonErr := json.Unmarshal(raw, &categories); jsonErr == nil {
			return categories, nil
		}
		r.logger.Warn("discarding corrupt category cache entry")
	case err != redis.Nil:
		r.logger.Warn("category cache read failed", zap.Error(err))
	}

	categories, err := r.CategoryRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(categories); err == nil {
		if err := r.client.Set(ctx, categoryListKey, payload, r.ttl).Err(); err != nil {
			r.logger.Warn("category cache write failed", zap.Error(err))
		}
	}
	return categories, nil
}

func (r *cachedCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := r.CategoryRepository.Create(ctx, category); err != nil {
		return err
	}
	if err := r.client.Del(ctx, categoryListKey).Err(); err != nil {
		r.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
	return nil
}
