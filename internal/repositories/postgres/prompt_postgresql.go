package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/promptforge/prompt-service/internal/cache"
	"github.com/promptforge/prompt-service/internal/models"
	"github.com/promptforge/prompt-service/internal/repositories"
)

// PromptPostgreSQL implements PromptRepository backed by GORM, with a
// read-through cache on owned-row lookups and list pages. Every write
// invalidates the owner's cached rows, list pages and dashboard aggregates.
type PromptPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

// promptListPage carries a list result through the cache as one value so a
// cached page and its total stay consistent.
type promptListPage struct {
	Prompts []*models.Prompt `json:"prompts"`
	Total   int64            `json:"total"`
}

func NewPromptPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.PromptRepository {
	return &PromptPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (r *PromptPostgreSQL) Create(ctx context.Context, prompt *models.Prompt) error {
	if err := r.db.WithContext(ctx).Create(prompt).Error; err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}

	cache.InvalidatePromptCache(ctx, r.cacheManager, prompt.UserID)
	return nil
}

func (r *PromptPostgreSQL) GetOwnedByID(ctx context.Context, id, userID uint) (*models.Prompt, error) {
	var prompt models.Prompt

	cacheKey := cache.PromptRowKey(userID, id)
	err := r.cacheManager.Prompt.CacheOrExecute(ctx, cacheKey, &prompt, cache.PromptCacheConfig.TTL, func() (interface{}, error) {
		var fetched models.Prompt
		if err := r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			First(&fetched).Error; err != nil {
			return nil, err
		}
		return &fetched, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}

	return &prompt, nil
}

func (r *PromptPostgreSQL) ListByUser(ctx context.Context, userID uint, filters repositories.PromptFilters) ([]*models.Prompt, int64, error) {
	category := ""
	if filters.Category != nil {
		category = string(*filters.Category)
	}

	var page promptListPage
	cacheKey := cache.PromptListKey(userID, category, filters.Limit, filters.Offset)
	err := r.cacheManager.Prompt.CacheOrExecute(ctx, cacheKey, &page, cache.PromptCacheConfig.TTL, func() (interface{}, error) {
		return r.listByUser(ctx, userID, filters)
	})
	if err != nil {
		return nil, 0, err
	}

	return page.Prompts, page.Total, nil
}

func (r *PromptPostgreSQL) listByUser(ctx context.Context, userID uint, filters repositories.PromptFilters) (*promptListPage, error) {
	query := r.db.WithContext(ctx).Model(&models.Prompt{}).Where("user_id = ?", userID)
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count prompts: %w", err)
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var prompts []*models.Prompt
	if err := query.Find(&prompts).Error; err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}

	return &promptListPage{Prompts: prompts, Total: total}, nil
}

func (r *PromptPostgreSQL) Update(ctx context.Context, prompt *models.Prompt) error {
	if err := r.db.WithContext(ctx).Save(prompt).Error; err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}

	cache.InvalidatePromptCache(ctx, r.cacheManager, prompt.UserID)
	return nil
}

func (r *PromptPostgreSQL) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Prompt{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete prompt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidatePromptCache(ctx, r.cacheManager, userID)
	return nil
}
