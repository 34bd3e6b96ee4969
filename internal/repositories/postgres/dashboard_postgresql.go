package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/promptforge/prompt-service/internal/models"
	"github.com/promptforge/prompt-service/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardPostgreSQL(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

// ===== DASHBOARD STATS =====

func (r *dashboardRepository) CountPrompts(ctx context.Context, userID uint) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count prompts: %w", err)
	}

	return count, nil
}

func (r *dashboardRepository) CountExecutions(ctx context.Context, userID uint) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Where("user_id = ? AND ai_response <> ''", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count executions: %w", err)
	}

	return count, nil
}

func (r *dashboardRepository) GetFavoriteCategory(ctx context.Context, userID uint) (string, error) {
	var rows []struct {
		Category string
		Count    int64
	}

	// Ties break alphabetically so the result is stable.
	if err := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Select("category, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("category").
		Order("count DESC, category ASC").
		Limit(1).
		Scan(&rows).Error; err != nil {
		return "", fmt.Errorf("failed to get favorite category: %w", err)
	}

	if len(rows) == 0 {
		return "", nil
	}

	return rows[0].Category, nil
}

func (r *dashboardRepository) GetRecentPrompts(ctx context.Context, userID uint, limit int) ([]*models.Prompt, error) {
	var prompts []*models.Prompt

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&prompts).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent prompts: %w", err)
	}

	return prompts, nil
}
