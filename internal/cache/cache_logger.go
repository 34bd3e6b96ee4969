package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// PromptRowKey is the Prompt-cache key for a single owned row.
func PromptRowKey(userID, promptID uint) string {
	return fmt.Sprintf("user:%d:id:%d", userID, promptID)
}

// PromptListKey is the Prompt-cache key for one list page.
func PromptListKey(userID uint, category string, limit, offset int) string {
	return fmt.Sprintf("user:%d:list:%s:%d:%d", userID, category, limit, offset)
}

// DashboardStatsKey is the Stats-cache key for a user's aggregates.
func DashboardStatsKey(userID uint) string {
	return fmt.Sprintf("dashboard:%d", userID)
}

// InvalidatePromptCache drops the owner's cached prompt rows, list pages and
// dashboard aggregates after any prompt write. Row and list keys are both
// scoped under user:<id>: so a single pattern covers them.
func InvalidatePromptCache(ctx context.Context, cm *CacheManager, userID uint) {
	SafeInvalidatePattern(ctx, cm.Prompt, fmt.Sprintf("user:%d:*", userID))
	InvalidateUserStats(ctx, cm, userID)
}

// InvalidateUserStats drops the dashboard aggregates for a user.
func InvalidateUserStats(ctx context.Context, cm *CacheManager, userID uint) {
	SafeDelete(ctx, cm.Stats, DashboardStatsKey(userID))
}

// InvalidateUserCache drops the cached user row after a profile update.
func InvalidateUserCache(ctx context.Context, cm *CacheManager, userID uint) {
	SafeDelete(ctx, cm.User, fmt.Sprintf("id:%d", userID))
}
