package family

import "time"

const (
	ProtagonistTypeChild = "child"
)

type Family struct {
	ID               string    `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"not null"`
	AdminID          string    `gorm:"type:uuid;not null;index"`
	OriginalUnitsDue int       `gorm:"not null;default:0"`
	CurrentUnitsDue  int       `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// Protagonist is the family's designated subject, created once with the
// family. A child protagonist drives the prorated first-period quota.
type Protagonist struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	FamilyID  string    `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Type      string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Member is the ledger's view of a users row: membership, role and the
// signed unit balance (negative = owes, positive = credited).
type Member struct {
	ID          string
	FamilyID    *string
	Role        string
	UnitBalance int
	CreatedAt   time.Time
}

type CreateFamilyInput struct {
	AdminID         string
	Name            string
	Role            string
	ProtagonistName string
	ProtagonistType string
}

type CreateFamilyResult struct {
	FamilyID string
	UnitsDue int
}

type JoinFamilyInput struct {
	UserID   string
	FamilyID string
	Role     string
	// CustomUnits overrides the fair share assigned to the joining
	// member when set.
	CustomUnits *int
}

type JoinFamilyResult struct {
	NewUserUnits int
	TotalUsers   int
}

type SearchQuery struct {
	ID   string
	Name string
}

// RolloverFailure records one family whose monthly rollover failed. The
// batch keeps going past it.
type RolloverFailure struct {
	FamilyID string
	Err      error
}
