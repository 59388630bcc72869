package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/repository"
)

const (
	statsCachePrefix = "chamados:stats:"
	statsCacheTTL    = 30 * time.Second
)

// StatsService computes dashboard numbers. Results are cached briefly in
// Redis per requesting subject; any ticket mutation invalidates the whole
// cache space.
type StatsService struct {
	repo   repository.StatsRepository
	cache  *redis.Client
	logger *zap.Logger
}

// NewStatsService constructs the service. A nil cache disables caching.
func NewStatsService(repo repository.StatsRepository, cache *redis.Client, logger *zap.Logger) *StatsService {
	return &StatsService{repo: repo, cache: cache, logger: logger}
}

// Dashboard returns the global counters plus the subject-scoped pair. For
// requesters "mine" means tickets they opened; for technicians it means
// open tickets plus tickets assigned to them, counted once.
func (s *StatsService) Dashboard(ctx context.Context, actor *domain.User) (repository.DashboardCounts, error) {
	key := statsCachePrefix + string(actor.Role) + ":" + actor.ID
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	counts, err := s.repo.Overview(ctx)
	if err != nil {
		return repository.DashboardCounts{}, err
	}

	switch actor.Role {
	case domain.RoleTechnician:
		counts.Mine, counts.PendingMine, err = s.repo.CountForTechnician(ctx, actor.ID)
	case domain.RoleAdmin:
		counts.Mine = counts.Total
		counts.PendingMine = counts.Open + counts.InProgress
	default:
		counts.Mine, counts.PendingMine, err = s.repo.CountForRequester(ctx, actor.ID)
	}
	if err != nil {
		return repository.DashboardCounts{}, err
	}

	s.toCache(ctx, key, counts)
	return counts, nil
}

// InvalidateAll drops every cached dashboard entry.
func (s *StatsService) InvalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, statsCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("stats cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *StatsService) fromCache(ctx context.Context, key string) (repository.DashboardCounts, bool) {
	if s.cache == nil {
		return repository.DashboardCounts{}, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		return repository.DashboardCounts{}, false
	}
	var counts repository.DashboardCounts
	if err := json.Unmarshal(raw, &counts); err != nil {
		return repository.DashboardCounts{}, false
	}
	return counts, true
}

func (s *StatsService) toCache(ctx context.Context, key string, counts repository.DashboardCounts) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, statsCacheTTL).Err(); err != nil {
		s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
	}
}
