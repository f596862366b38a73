package user

import (
	"context"
	"time"
)

type Repository interface {
	GetByGoogleID(ctx context.Context, googleID string) (*User, error)
	Create(ctx context.Context, user *User) error

	RecordLogin(ctx context.Context, record *LoginRecord) error
	LatestLogin(ctx context.Context, userID string) (*LoginRecord, error)
	CloseLogin(ctx context.Context, loginID string, logoutTime time.Time, sessionSeconds int64) error

	// GetFamilySummary returns nil (no error) when the family row is
	// gone; a dangling family id on a user is not a login failure.
	GetFamilySummary(ctx context.Context, familyID string) (*FamilySummary, error)
}
