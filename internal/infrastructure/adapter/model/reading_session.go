package model

import (
	"time"
)

// ReadingSession represents the database model for billable sessions.
// RatePerMinute is written once at creation; TotalMinutes and TotalAmount
// are written once, by the settlement engine's conditional status update.
type ReadingSession struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	ClientID      string    `gorm:"not null;size:36;index"`
	ReaderID      string    `gorm:"not null;size:36;index"`
	SessionType   string    `gorm:"not null;size:20"`
	Status        string    `gorm:"not null;size:20;index"`
	StartTime     time.Time `gorm:"not null"`
	EndTime       *time.Time
	RatePerMinute int64     `gorm:"not null"`
	TotalMinutes  int       `gorm:"not null;default:0"`
	TotalAmount   int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	Client User `gorm:"foreignKey:ClientID;references:ID"`
	Reader User `gorm:"foreignKey:ReaderID;references:ID"`
}

// TableName specifies the table name for ReadingSession
func (ReadingSession) TableName() string {
	return "reading_sessions"
}
