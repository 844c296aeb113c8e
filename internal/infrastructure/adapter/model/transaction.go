package model

import (
	"time"
)

// Transaction represents the database model for ledger entries. Rows are
// append-only: nothing in the codebase updates or deletes them.
type Transaction struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      string    `gorm:"not null;size:36;index"`
	ReaderID    string    `gorm:"size:36;index"`
	Type        string    `gorm:"not null;size:30;index"`
	AmountCents int64     `gorm:"not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
