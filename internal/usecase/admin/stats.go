package admin

import (
	"context"
	"time"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/repository"
	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
)

type Stats struct {
	JobsByStatus    map[string]int `json:"jobs_by_status"`
	PendingApproval int            `json:"pending_approval"`
	OrdersByStatus  map[string]int `json:"orders_by_status"`
	OpenDisputes    int            `json:"open_disputes"`
}

const statsCacheKey = "admin:stats"

// Cache: кэш счётчиков панели. Реализуется service.CacheService.
type Cache interface {
	GetOrSet(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) (any, error)) (any, error)
	InvalidateByPrefix(prefix string)
}

type GetStatsUseCase struct {
	store repository.Store
	cache Cache
	ttl   time.Duration
}

func NewGetStatsUseCase(store repository.Store) *GetStatsUseCase {
	return &GetStatsUseCase{store: store}
}

// WithCache включает кэширование счётчиков на ttl.
func (uc *GetStatsUseCase) WithCache(cache Cache, ttl time.Duration) *GetStatsUseCase {
	uc.cache = cache
	uc.ttl = ttl
	return uc
}

func (uc *GetStatsUseCase) Execute(ctx context.Context, actor valueobject.Identity) (*Stats, error) {
	if err := actor.Require(valueobject.RoleAdmin); err != nil {
		return nil, err
	}
	if uc.cache == nil || uc.ttl <= 0 {
		return uc.count(ctx)
	}

	v, err := uc.cache.GetOrSet(ctx, statsCacheKey, uc.ttl, func(ctx context.Context) (any, error) {
		return uc.count(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Stats), nil
}

func (uc *GetStatsUseCase) count(ctx context.Context) (*Stats, error) {
	var (
		stats Stats
		err   error
	)
	if stats.JobsByStatus, err = uc.store.Jobs().CountByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.PendingApproval, err = uc.store.Jobs().CountPendingApproval(ctx); err != nil {
		return nil, err
	}
	if stats.OrdersByStatus, err = uc.store.Orders().CountByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.OpenDisputes, err = uc.store.Disputes().CountOpen(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}
