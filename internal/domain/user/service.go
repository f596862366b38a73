package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// RegisterOrAuthenticate creates the user on first sight of the
// external identity, appends a login-history row either way, and for
// returning users resolves their unit balance and family summary.
func (s *Service) RegisterOrAuthenticate(ctx context.Context, googleID, email, name string) (*AuthResult, error) {
	googleID = strings.TrimSpace(googleID)
	if googleID == "" {
		return nil, fmt.Errorf("external id is required")
	}

	existing, err := s.repo.GetByGoogleID(ctx, googleID)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if existing == nil {
		created := User{
			ID:       uuid.NewString(),
			GoogleID: googleID,
			Email:    email,
			Name:     name,
		}
		if err := s.repo.Create(ctx, &created); err != nil {
			return nil, fmt.Errorf("register user: %w", err)
		}
		if err := s.recordLogin(ctx, created.ID); err != nil {
			return nil, err
		}
		return &AuthResult{UserID: created.ID, IsNewUser: true}, nil
	}

	if err := s.recordLogin(ctx, existing.ID); err != nil {
		return nil, err
	}

	result := AuthResult{
		UserID:      existing.ID,
		UnitBalance: existing.UnitBalance,
	}

	if existing.FamilyID != nil {
		summary, err := s.repo.GetFamilySummary(ctx, *existing.FamilyID)
		if err != nil {
			return nil, err
		}
		result.Family = summary
	}

	return &result, nil
}

// Logout closes the user's most recent login record. A user with no
// login history logs out as a no-op.
func (s *Service) Logout(ctx context.Context, userID string) error {
	record, err := s.repo.LatestLogin(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrLoginNotFound) {
			return nil
		}
		return err
	}

	logoutTime := s.now().UTC()
	seconds := int64(logoutTime.Sub(record.LoginTime) / time.Second)
	return s.repo.CloseLogin(ctx, record.ID, logoutTime, seconds)
}

func (s *Service) recordLogin(ctx context.Context, userID string) error {
	record := LoginRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		LoginTime: s.now().UTC(),
	}
	if err := s.repo.RecordLogin(ctx, &record); err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}
