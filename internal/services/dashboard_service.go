package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/promptforge/prompt-service/internal/cache"
	"github.com/promptforge/prompt-service/internal/models"
	"github.com/promptforge/prompt-service/internal/repositories"
)

const recentActivityLimit = 5

type dashboardService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		cache:  cacheManager,
		logger: logger,
	}
}

// GetStats aggregates the user's dashboard numbers, served cache-aside with a
// short TTL since every prompt write invalidates them.
func (s *dashboardService) GetStats(ctx context.Context, userID uint) (*models.DashboardStatsResponse, error) {
	var stats models.DashboardStatsResponse

	cacheKey := cache.DashboardStatsKey(userID)
	err := s.cache.Stats.CacheOrExecute(ctx, cacheKey, &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		return s.computeStats(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}

	// recentActivity must serialize as [] rather than null for new users.
	if stats.RecentActivity == nil {
		stats.RecentActivity = []*models.Prompt{}
	}

	return &stats, nil
}

func (s *dashboardService) computeStats(ctx context.Context, userID uint) (*models.DashboardStatsResponse, error) {
	dash := s.repo.Dashboard()

	totalPrompts, err := dash.CountPrompts(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalExecutions, err := dash.CountExecutions(ctx, userID)
	if err != nil {
		return nil, err
	}

	favorite, err := dash.GetFavoriteCategory(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := dash.GetRecentPrompts(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStatsResponse{
		TotalPrompts:     totalPrompts,
		TotalExecutions:  totalExecutions,
		FavoriteCategory: favorite,
		RecentActivity:   recent,
	}, nil
}
