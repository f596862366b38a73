package user

import "time"

type User struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	GoogleID    string    `gorm:"not null;uniqueIndex"`
	Email       string    `gorm:"type:text"`
	Name        string    `gorm:"type:text"`
	FamilyID    *string   `gorm:"type:uuid;index"`
	Role        string    `gorm:"type:text"`
	UnitBalance int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// LoginRecord is one row of login history. Logout stamps LogoutTime and
// the resulting session length.
type LoginRecord struct {
	ID             string     `gorm:"type:uuid;primaryKey"`
	UserID         string     `gorm:"type:uuid;not null;index"`
	LoginTime      time.Time  `gorm:"not null"`
	LogoutTime     *time.Time `gorm:""`
	SessionSeconds *int64     `gorm:""`
}

func (LoginRecord) TableName() string {
	return "user_login_history"
}

// FamilySummary is what a logging-in user sees of their family.
type FamilySummary struct {
	ID               string `json:"familyId"`
	Name             string `json:"familyName"`
	OriginalUnitsDue int    `json:"originalUnitsDue"`
	CurrentUnitsDue  int    `json:"currentUnitsDue"`
}

type AuthResult struct {
	UserID      string
	IsNewUser   bool
	UnitBalance int
	Family      *FamilySummary
}
