package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/Homestead_Go/internal/domain"
	"github.com/osse101/Homestead_Go/internal/logger"
	"github.com/osse101/Homestead_Go/internal/repository"
)

// Service is the read side of the crop catalog
type Service interface {
	List(ctx context.Context) ([]domain.CropMaster, error)
	Get(ctx context.Context, id string) (*domain.CropMaster, error)
	Invalidate()
}

type service struct {
	repo  repository.Catalog
	cache *expirable.LRU[string, []domain.CropMaster]
}

// NewService wraps repo in a read-through cache. Non-positive size or ttl
// fall back to the defaults.
func NewService(repo repository.Catalog, size int, ttl time.Duration) Service {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		repo:  repo,
		cache: expirable.NewLRU[string, []domain.CropMaster](size, nil, ttl),
	}
}

// cropCacheKey keeps per-crop entries out of the list entry's keyspace
func cropCacheKey(id string) string {
	return cropCacheKeyPrefix + id
}

// List returns the whole catalog ordered by buy price, then name
func (s *service) List(ctx context.Context) ([]domain.CropMaster, error) {
	log := logger.FromContext(ctx)

	if crops, ok := s.cache.Get(listCacheKey); ok {
		log.Debug(LogMsgCacheHit, "key", listCacheKey)
		return copyCrops(crops), nil
	}
	log.Debug(LogMsgCacheMiss, "key", listCacheKey)

	crops, err := s.repo.ListCropMasters(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListCropsFailed, err)
	}
	s.cache.Add(listCacheKey, crops)
	return copyCrops(crops), nil
}

// Get returns one crop master; unknown or empty ids yield domain.ErrCropMasterNotFound
func (s *service) Get(ctx context.Context, id string) (*domain.CropMaster, error) {
	if id == "" {
		return nil, domain.ErrCropMasterNotFound
	}

	key := cropCacheKey(id)
	if crops, ok := s.cache.Get(key); ok && len(crops) == 1 && crops[0].ID == id {
		logger.FromContext(ctx).Debug(LogMsgCacheHit, "key", key)
		crop := crops[0]
		return &crop, nil
	}

	crop, err := s.repo.GetCropMaster(ctx, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCropFailed, id, err)
	}
	s.cache.Add(key, []domain.CropMaster{*crop})
	return crop, nil
}

// Invalidate drops every cached entry
func (s *service) Invalidate() {
	s.cache.Purge()
}

func copyCrops(crops []domain.CropMaster) []domain.CropMaster {
	out := make([]domain.CropMaster, len(crops))
	copy(out, crops)
	return out
}
