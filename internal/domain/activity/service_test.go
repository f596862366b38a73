package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeActivityRepo struct {
	activities map[string]*Activity
	balances   map[string]int
	unitsDue   map[string]int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{
		activities: make(map[string]*Activity),
		balances:   make(map[string]int),
		unitsDue:   make(map[string]int),
	}
}

func (r *fakeActivityRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeActivityRepo) HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	for _, act := range r.activities {
		if act.UserID != userID {
			continue
		}
		if act.StartTime.Before(end) && act.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeActivityRepo) Create(ctx context.Context, activity *Activity) error {
	copied := *activity
	r.activities[activity.ID] = &copied
	return nil
}

func (r *fakeActivityRepo) GetForUpdate(ctx context.Context, activityID string) (*Activity, error) {
	act, ok := r.activities[activityID]
	if !ok {
		return nil, ErrActivityNotFound
	}
	copied := *act
	return &copied, nil
}

func (r *fakeActivityRepo) Delete(ctx context.Context, activityID string) error {
	delete(r.activities, activityID)
	return nil
}

func (r *fakeActivityRepo) AdjustUserBalance(ctx context.Context, userID string, delta int) error {
	r.balances[userID] += delta
	return nil
}

func (r *fakeActivityRepo) AdjustFamilyUnitsDue(ctx context.Context, familyID string, delta int) error {
	r.unitsDue[familyID] += delta
	return nil
}

func familyInput(start time.Time, duration float64) CreateInput {
	familyID := "fam-1"
	return CreateInput{
		UserID:        "user-1",
		FamilyID:      &familyID,
		Title:         "Cooking",
		Description:   "dinner",
		ActivityType:  TypeFamily,
		StartTime:     start,
		DurationHours: duration,
	}
}

func TestCreateRoundsDurationUp(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewService(repo)

	start := time.Date(2025, time.June, 10, 16, 0, 0, 0, time.UTC)
	id, err := svc.Create(context.Background(), familyInput(start, 1.2))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	act := repo.activities[id]
	if act == nil {
		t.Fatalf("activity not stored")
	}
	if act.Units != 2 {
		t.Fatalf("expected 2 units for 1.2h, got %d", act.Units)
	}
	if want := start.Add(2 * time.Hour); !act.EndTime.Equal(want) {
		t.Fatalf("expected end %s, got %s", want, act.EndTime)
	}
}

func TestCreateMinimumOneUnit(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewService(repo)

	start := time.Date(2025, time.June, 10, 16, 30, 0, 0, time.UTC)
	id, err := svc.Create(context.Background(), familyInput(start, 0.5))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := repo.activities[id].Units; got != 1 {
		t.Fatalf("expected 1 unit for 0.5h, got %d", got)
	}
}

func TestCreateStartMinuteGrid(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewService(repo)

	bad := time.Date(2025, time.June, 10, 16, 15, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), familyInput(bad, 1))
	if !errors.Is(err, ErrInvalidStartMinute) {
		t.Fatalf("expected ErrInvalidStartMinute for :15, got %v", err)
	}

	// Different hours so the accepted bookings do not overlap.
	for i, minute := range []int{0, 30} {
		start := time.Date(2025, time.June, 10, 9+2*i, minute, 0, 0, time.UTC)
		if _, err := svc.Create(context.Background(), familyInput(start, 1)); err != nil {
			t.Fatalf("expected minute %d accepted, got %v", minute, err)
		}
	}
}

func TestCreateInvalidType(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewService(repo)

	in := familyInput(time.Date(2025, time.June, 10, 16, 0, 0, 0, time.UTC), 1)
	in.ActivityType = "team"
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestCreateRejectsOverlap(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewService(repo)

	start := time.Date(2025, time.June, 10, 16, 0, 0, 0, time.UTC)
	if _, err := svc.Create(context.Background(), familyInput(start, 2)); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// 17:00 falls inside [16:00, 18:00).
	_, err := svc.Create(context.Background(), familyInput(start.Add(time.Hour), 1))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	// Adjacent booking starting exactly at the previous end is fine.
	if _, err := svc.Create(context.Background(), familyInput(start.Add(2*time.Hour), 1)); err != nil {
		t.Fatalf("adjacent booking rejected: %v", err)
	}

	// Another user is free to book the same slot.
	other := familyInput(start, 1)
	other.UserID = "user-2"
	if _, err := svc.Create(context.Background(), other); err != nil {
		t.Fatalf("other user booking rejected: %v", err)
	}
}

func TestCreateFamilyActivityAppliesDeltas(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewService(repo)

	start := time.Date(2025, time.June, 10, 16, 0, 0, 0, time.UTC)
	if _, err := svc.Create(context.Background(), familyInput(start, 3)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := repo.balances["user-1"]; got != 3 {
		t.Fatalf("expected user credited 3, got %d", got)
	}
	if got := repo.unitsDue["fam-1"]; got != -3 {
		t.Fatalf("expected family units due -3, got %d", got)
	}
}

func TestCreatePersonalActivityNoDeltas(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewService(repo)

	in := familyInput(time.Date(2025, time.June, 10, 16, 0, 0, 0, time.UTC), 2)
	in.ActivityType = TypePersonal
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := repo.balances["user-1"]; got != 0 {
		t.Fatalf("expected no balance change, got %d", got)
	}
	if got := repo.unitsDue["fam-1"]; got != 0 {
		t.Fatalf("expected no units due change, got %d", got)
	}
}

func TestDeleteReversesCreate(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewService(repo)

	start := time.Date(2025, time.June, 10, 16, 0, 0, 0, time.UTC)
	id, err := svc.Create(context.Background(), familyInput(start, 2.5))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := repo.balances["user-1"]; got != 0 {
		t.Fatalf("expected balance restored to 0, got %d", got)
	}
	if got := repo.unitsDue["fam-1"]; got != 0 {
		t.Fatalf("expected units due restored to 0, got %d", got)
	}
	if _, ok := repo.activities[id]; ok {
		t.Fatalf("expected activity deleted")
	}

	// The freed slot can be booked again.
	if _, err := svc.Create(context.Background(), familyInput(start, 1)); err != nil {
		t.Fatalf("rebooking freed slot failed: %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewService(repo)

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("expected ErrActivityNotFound, got %v", err)
	}
}
