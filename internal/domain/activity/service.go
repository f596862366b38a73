package activity

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create books an activity on the half-hour grid. Duration is billed in
// whole hours rounded up, minimum one. A family activity credits the
// user's balance and consumes the family's outstanding units.
func (s *Service) Create(ctx context.Context, in CreateInput) (string, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.UserID == "" || in.Title == "" {
		return "", fmt.Errorf("user id and title are required")
	}
	if in.ActivityType != TypePersonal && in.ActivityType != TypeFamily {
		return "", ErrInvalidType
	}
	if minute := in.StartTime.Minute(); minute != 0 && minute != 30 {
		return "", ErrInvalidStartMinute
	}
	if in.DurationHours <= 0 {
		return "", ErrInvalidDuration
	}

	units := int(math.Ceil(in.DurationHours))
	if units < 1 {
		units = 1
	}
	end := in.StartTime.Add(time.Duration(units) * time.Hour)

	act := Activity{
		ID:           uuid.NewString(),
		UserID:       in.UserID,
		FamilyID:     in.FamilyID,
		Title:        in.Title,
		Description:  in.Description,
		ActivityType: in.ActivityType,
		StartTime:    in.StartTime,
		EndTime:      end,
		Units:        units,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.HasOverlap(ctx, in.UserID, act.StartTime, act.EndTime)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}

		if err := tx.Create(ctx, &act); err != nil {
			return err
		}

		if act.ActivityType == TypeFamily {
			if err := tx.AdjustUserBalance(ctx, act.UserID, act.Units); err != nil {
				return err
			}
			if act.FamilyID != nil {
				if err := tx.AdjustFamilyUnitsDue(ctx, *act.FamilyID, -act.Units); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return act.ID, nil
}

// Delete removes an activity and reverses its unit effect, the exact
// inverse of Create.
func (s *Service) Delete(ctx context.Context, activityID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		act, err := tx.GetForUpdate(ctx, activityID)
		if err != nil {
			return err
		}

		if err := tx.Delete(ctx, act.ID); err != nil {
			return err
		}

		if act.ActivityType == TypeFamily {
			if err := tx.AdjustUserBalance(ctx, act.UserID, -act.Units); err != nil {
				return err
			}
			if act.FamilyID != nil {
				if err := tx.AdjustFamilyUnitsDue(ctx, *act.FamilyID, act.Units); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
