package repositories

import (
	"context"

	"github.com/promptforge/prompt-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type PromptFilters struct {
	Category *models.PromptCategory `json:"category"`
	Limit    int                    `json:"limit"`
	Offset   int                    `json:"offset"`
}

// ===== USER DOMAIN =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// ===== PROMPT DOMAIN =====

type PromptRepository interface {
	Create(ctx context.Context, prompt *models.Prompt) error

	// GetOwnedByID scopes the lookup to the owner; a prompt belonging to
	// another user is indistinguishable from a missing one.
	GetOwnedByID(ctx context.Context, id, userID uint) (*models.Prompt, error)

	// ListByUser returns a page of the user's prompts, newest first, plus the
	// total count.
	ListByUser(ctx context.Context, userID uint, filters PromptFilters) ([]*models.Prompt, int64, error)

	Update(ctx context.Context, prompt *models.Prompt) error
	Delete(ctx context.Context, id, userID uint) error
}

// ===== DASHBOARD DOMAIN =====

type DashboardRepository interface {
	CountPrompts(ctx context.Context, userID uint) (int64, error)

	// CountExecutions counts prompts that hold a non-empty AI response.
	CountExecutions(ctx context.Context, userID uint) (int64, error)

	// GetFavoriteCategory returns the user's most used category, or "" when
	// the user has no prompts. Ties break by category name ascending.
	GetFavoriteCategory(ctx context.Context, userID uint) (string, error)

	GetRecentPrompts(ctx context.Context, userID uint, limit int) ([]*models.Prompt, error)
}
