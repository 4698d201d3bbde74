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

// InvalidateAvailabilityCache drops the cached availability record for a HOD.
func InvalidateAvailabilityCache(ctx context.Context, cm *CacheManager, userID uint) {
	SafeDelete(ctx, cm.Availability, fmt.Sprintf("user:%d", userID))
}

// InvalidateStudentCache drops the cached detail for one student plus any
// cached list/dashboard aggregates that include it.
func InvalidateStudentCache(ctx context.Context, cm *CacheManager, studentID uint) {
	SafeDelete(ctx, cm.Student, fmt.Sprintf("id:%d", studentID))
	SafeInvalidatePattern(ctx, cm.Student, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, "dashboard:*")
}

// InvalidateDashboardCache drops cached dashboard counts; called on any
// write that changes what the dashboard reports.
func InvalidateDashboardCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Stats, "dashboard:*")
}
