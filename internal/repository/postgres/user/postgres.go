package user

import (
	"context"
	"errors"
	"time"

	userdomain "family-scheduler-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByGoogleID(ctx context.Context, googleID string) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *userdomain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *PostgresRepository) RecordLogin(ctx context.Context, record *userdomain.LoginRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) LatestLogin(ctx context.Context, userID string) (*userdomain.LoginRecord, error) {
	var record userdomain.LoginRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("login_time desc").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, userdomain.ErrLoginNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) CloseLogin(ctx context.Context, loginID string, logoutTime time.Time, sessionSeconds int64) error {
	return r.db.WithContext(ctx).
		Model(&userdomain.LoginRecord{}).
		Where("id = ?", loginID).
		Updates(map[string]interface{}{
			"logout_time":     logoutTime,
			"session_seconds": sessionSeconds,
		}).Error
}

func (r *PostgresRepository) GetFamilySummary(ctx context.Context, familyID string) (*userdomain.FamilySummary, error) {
	var summary userdomain.FamilySummary
	err := r.db.WithContext(ctx).
		Table("families").
		Select("id, name, original_units_due, current_units_due").
		Where("id = ?", familyID).
		Take(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
