package activity

import (
	"context"
	"errors"
	"time"

	activitydomain "family-scheduler-go/internal/domain/activity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(activitydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// HasOverlap reports whether the user already has an activity whose
// [start, end) interval strictly overlaps the given one.
func (r *PostgresRepository) HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&activitydomain.Activity{}).
		Where("user_id = ? AND start_time < ? AND end_time > ?", userID, end, start).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) Create(ctx context.Context, activity *activitydomain.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, activityID string) (*activitydomain.Activity, error) {
	var activity activitydomain.Activity
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", activityID).
		First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, activitydomain.ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, activityID string) error {
	result := r.db.WithContext(ctx).Delete(&activitydomain.Activity{}, "id = ?", activityID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return activitydomain.ErrActivityNotFound
	}
	return nil
}

func (r *PostgresRepository) AdjustUserBalance(ctx context.Context, userID string, delta int) error {
	return r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Update("unit_balance", gorm.Expr("unit_balance + ?", delta)).Error
}

func (r *PostgresRepository) AdjustFamilyUnitsDue(ctx context.Context, familyID string, delta int) error {
	return r.db.WithContext(ctx).
		Table("families").
		Where("id = ?", familyID).
		Update("current_units_due", gorm.Expr("current_units_due + ?", delta)).Error
}
