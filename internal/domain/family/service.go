package family

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"family-scheduler-go/internal/units"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateFamily creates the family, assigns the admin, records the
// protagonist and, for a child protagonist, prorates and allocates the
// first-period quota. Everything runs in one transaction.
func (s *Service) CreateFamily(ctx context.Context, in CreateFamilyInput) (*CreateFamilyResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("family name is required")
	}

	var result CreateFamilyResult
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		admin, err := tx.GetMemberForUpdate(ctx, in.AdminID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		fam := Family{
			ID:      uuid.NewString(),
			Name:    in.Name,
			AdminID: admin.ID,
		}
		if err := tx.CreateFamily(ctx, &fam); err != nil {
			return err
		}

		if err := tx.AssignToFamily(ctx, admin.ID, fam.ID, in.Role); err != nil {
			return err
		}

		protagonist := Protagonist{
			ID:        uuid.NewString(),
			FamilyID:  fam.ID,
			Name:      in.ProtagonistName,
			Type:      strings.ToLower(strings.TrimSpace(in.ProtagonistType)),
			CreatedAt: now,
		}
		if err := tx.CreateProtagonist(ctx, &protagonist); err != nil {
			return err
		}

		unitsDue := 0
		if protagonist.Type == ProtagonistTypeChild {
			unitsDue = units.DueFromStart(protagonist.CreatedAt, now)
			if err := tx.SetUnitsDue(ctx, fam.ID, unitsDue, unitsDue); err != nil {
				return err
			}
			if err := s.allocate(ctx, tx, fam.ID); err != nil {
				return err
			}
		}

		result = CreateFamilyResult{FamilyID: fam.ID, UnitsDue: unitsDue}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// AllocateUserUnits recomputes every member's balance from the family's
// OriginalUnitsDue. Re-running overwrites prior balances, it is not
// additive.
func (s *Service) AllocateUserUnits(ctx context.Context, familyID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		return s.allocate(ctx, tx, familyID)
	})
}

func (s *Service) allocate(ctx context.Context, tx Repository, familyID string) error {
	fam, err := tx.GetFamilyForUpdate(ctx, familyID)
	if err != nil {
		return err
	}
	if fam.OriginalUnitsDue == 0 {
		return nil
	}

	members, err := tx.ListMembersForUpdate(ctx, familyID)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}

	// Each member starts the period owing their share, so balances
	// are the negated fair-share split of OriginalUnitsDue.
	shares := units.Distribute(fam.OriginalUnitsDue, len(members))
	for i, member := range members {
		if err := tx.SetMemberBalance(ctx, member.ID, -shares[i]); err != nil {
			return err
		}
	}
	return nil
}

// MonthlyRollover resets every family's quota to the full-month value
// and reallocates member balances. Each family runs in its own
// transaction; failures are collected and returned rather than aborting
// the batch.
func (s *Service) MonthlyRollover(ctx context.Context, now time.Time) ([]RolloverFailure, error) {
	familyIDs, err := s.repo.ListFamilyIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}

	quota := units.MonthlyQuota(now)

	var failures []RolloverFailure
	for _, familyID := range familyIDs {
		err := s.repo.Transaction(ctx, func(tx Repository) error {
			if err := tx.SetUnitsDue(ctx, familyID, quota, quota); err != nil {
				return err
			}
			return s.allocate(ctx, tx, familyID)
		})
		if err != nil {
			failures = append(failures, RolloverFailure{FamilyID: familyID, Err: err})
		}
	}

	return failures, nil
}

// JoinFamily adds a user to an existing family and reapportions the
// pooled units (CurrentUnitsDue plus all incumbent balances) between
// the newcomer and the incumbents.
func (s *Service) JoinFamily(ctx context.Context, in JoinFamilyInput) (*JoinFamilyResult, error) {
	var result JoinFamilyResult
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		fam, err := tx.GetFamilyForUpdate(ctx, in.FamilyID)
		if err != nil {
			return err
		}

		user, err := tx.GetMemberForUpdate(ctx, in.UserID)
		if err != nil {
			return err
		}
		if user.FamilyID != nil {
			return ErrAlreadyInFamily
		}

		incumbents, err := tx.ListMembersForUpdate(ctx, fam.ID)
		if err != nil {
			return err
		}

		totalAvailable := fam.CurrentUnitsDue
		for _, member := range incumbents {
			totalAvailable += member.UnitBalance
		}

		if err := tx.AssignToFamily(ctx, user.ID, fam.ID, in.Role); err != nil {
			return err
		}

		totalUsers := len(incumbents) + 1
		newUserUnits := units.FloorDiv(totalAvailable, totalUsers)
		if in.CustomUnits != nil {
			newUserUnits = *in.CustomUnits
		}

		remaining := totalAvailable - newUserUnits
		if len(incumbents) > 0 {
			shares := units.Distribute(remaining, len(incumbents))
			for i, member := range incumbents {
				if err := tx.SetMemberBalance(ctx, member.ID, shares[i]); err != nil {
					return err
				}
			}
		}

		if err := tx.SetMemberBalance(ctx, user.ID, newUserUnits); err != nil {
			return err
		}
		if err := tx.SetCurrentUnitsDue(ctx, fam.ID, totalAvailable); err != nil {
			return err
		}

		result = JoinFamilyResult{NewUserUnits: newUserUnits, TotalUsers: totalUsers}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// SearchFamilies looks families up by exact id or case-insensitive
// partial name match. No match is an empty result, not an error.
func (s *Service) SearchFamilies(ctx context.Context, q SearchQuery) ([]Family, error) {
	if q.ID != "" {
		fam, err := s.repo.GetFamily(ctx, q.ID)
		if err != nil {
			if errors.Is(err, ErrFamilyNotFound) {
				return []Family{}, nil
			}
			return nil, err
		}
		return []Family{*fam}, nil
	}

	return s.repo.SearchByName(ctx, strings.TrimSpace(q.Name))
}
