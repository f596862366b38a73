package activity

import "time"

const (
	TypePersonal = "personal"
	TypeFamily   = "family"
)

type Activity struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	UserID       string    `gorm:"type:uuid;not null;index:idx_activities_user_time"`
	FamilyID     *string   `gorm:"type:uuid"`
	Title        string    `gorm:"not null"`
	Description  string    `gorm:"type:text"`
	ActivityType string    `gorm:"type:varchar(16);not null"`
	StartTime    time.Time `gorm:"not null;index:idx_activities_user_time"`
	EndTime      time.Time `gorm:"not null"`
	Units        int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

type CreateInput struct {
	UserID        string
	FamilyID      *string
	Title         string
	Description   string
	ActivityType  string
	StartTime     time.Time
	DurationHours float64
}
