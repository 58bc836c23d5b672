package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/saboresapp/sabores-backend/pkg/config"
	"github.com/saboresapp/sabores-backend/pkg/logger"
	"github.com/saboresapp/sabores-backend/pkg/redis"
)

// Service loads consistent catalog snapshots for the pricing layer.
type Service interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type service struct {
	repo  *Repository
	cache *snapshotCache
	logg  *logger.Logger
}

// NewService builds the snapshot loader. The redis client is optional; when
// absent (or cache disabled) every snapshot comes straight from the database.
func NewService(repo *Repository, redisClient *redis.Client, cfg config.CatalogConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	svc := &service{repo: repo, logg: logg}
	if cfg.CacheEnabled && redisClient != nil {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = 30 * time.Second
		}
		svc.cache = newSnapshotCache(redisClient, ttl)
	}
	return svc, nil
}

// Snapshot returns the current catalog view, from cache when fresh enough.
func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s.cache != nil {
		p, ok, err := s.cache.get(ctx)
		if err != nil && s.logg != nil {
			s.logg.Warn(ctx, "catalog cache read failed: "+err.Error())
		}
		if ok {
			return newSnapshot(p), nil
		}
	}

	p, err := s.repo.LoadPayload(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.put(ctx, p); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "catalog cache write failed: "+err.Error())
		}
	}

	return newSnapshot(p), nil
}
