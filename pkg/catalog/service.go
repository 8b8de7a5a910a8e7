package catalog

import (
	"context"

	"github.com/example/giftstore/pkg/models"
	"github.com/example/giftstore/pkg/repository"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Collection names follow the original store layout: lowercase entity name.
const (
	GiftCollection        = "gift"
	TestimonialCollection = "testimonial"
)

const (
	giftsCacheKey        = "catalog:gifts"
	testimonialsCacheKey = "catalog:testimonials"
)

// Service serves read-only catalog listings. With a connected store it
// projects live documents (optionally through the redis cache); with no
// store configured it serves the fixed fallback sets. A store that was
// configured but is broken surfaces its error instead of fallback data, so
// operators can tell the two degraded modes apart.
type Service struct {
	store  repository.DocumentStore
	cache  *repository.RedisCache
	logger *zap.Logger
}

// NewService wires the catalog reader. cache may be nil.
func NewService(store repository.DocumentStore, cache *repository.RedisCache, logger *zap.Logger) *Service {
	return &Service{store: store, cache: cache, logger: logger}
}

func (s *Service) ListGifts(ctx context.Context) ([]models.GiftView, error) {
	if s.store.State() == repository.StateUnconfigured {
		return FallbackGifts(), nil
	}

	if views, ok := cacheGet[models.GiftView](ctx, s, giftsCacheKey); ok {
		return views, nil
	}

	docs, err := s.store.ListDocuments(ctx, GiftCollection)
	if err != nil {
		return nil, err
	}
	views := make([]models.GiftView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, models.ProjectGift(doc))
	}

	s.cacheSet(ctx, giftsCacheKey, views)
	return views, nil
}

func (s *Service) ListTestimonials(ctx context.Context) ([]models.TestimonialView, error) {
	if s.store.State() == repository.StateUnconfigured {
		return FallbackTestimonials(), nil
	}

	if views, ok := cacheGet[models.TestimonialView](ctx, s, testimonialsCacheKey); ok {
		return views, nil
	}

	docs, err := s.store.ListDocuments(ctx, TestimonialCollection)
	if err != nil {
		return nil, err
	}
	views := make([]models.TestimonialView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, models.ProjectTestimonial(doc))
	}

	s.cacheSet(ctx, testimonialsCacheKey, views)
	return views, nil
}

// cacheGet is a best-effort lookup: any cache failure is treated as a miss.
func cacheGet[T any](ctx context.Context, s *Service, key string) ([]T, bool) {
	if s.cache == nil || s.store.State() != repository.StateConnected {
		return nil, false
	}
	var views []T
	err := s.cache.GetJSON(ctx, key, &views)
	if err == nil {
		return views, true
	}
	if err != redis.Nil {
		s.logger.Debug("Catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	return nil, false
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value); err != nil {
		s.logger.Debug("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
