package activity

import (
	"context"
	"time"
)

// Repository persists activities and applies their unit deltas to the
// shared users/families counters. Balance adjustments happen inside the
// same transaction as the activity row change.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error)
	Create(ctx context.Context, activity *Activity) error
	GetForUpdate(ctx context.Context, activityID string) (*Activity, error)
	Delete(ctx context.Context, activityID string) error

	AdjustUserBalance(ctx context.Context, userID string, delta int) error
	AdjustFamilyUnitsDue(ctx context.Context, familyID string, delta int) error
}
