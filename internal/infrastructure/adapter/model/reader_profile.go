package model

import (
	"time"
)

// ReaderProfile represents the database model for reader profiles.
// Rates are cents per minute; 0 means the service is not offered.
type ReaderProfile struct {
	UserID          string    `gorm:"primaryKey;size:36"`
	DisplayName     string    `gorm:"size:255"`
	ChatRatePerMin  int64     `gorm:"not null;default:0"`
	PhoneRatePerMin int64     `gorm:"not null;default:0"`
	VideoRatePerMin int64     `gorm:"not null;default:0"`
	IsOnline        bool      `gorm:"not null;default:false"`
	IsAvailable     bool      `gorm:"not null;default:false;index"`
	Rating          float64   `gorm:"not null;default:0"`
	TotalReviews    int       `gorm:"not null;default:0"`
	TotalSessions   int       `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for ReaderProfile
func (ReaderProfile) TableName() string {
	return "reader_profiles"
}
