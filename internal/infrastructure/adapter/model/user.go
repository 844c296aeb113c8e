package model

import (
	"time"
)

// User represents the database model for platform accounts. Balance is
// stored in cents; the CHECK constraint backs up the domain's non-negative
// invariant at the storage layer.
type User struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Email     string    `gorm:"uniqueIndex;size:255"`
	Name      string    `gorm:"size:255"`
	Role      string    `gorm:"not null;size:20;index"`
	Balance   int64     `gorm:"not null;default:0;check:balance >= 0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
