package models

import "time"

// Income and Expense are the bookkeeping entries. Both go through a
// stage-then-confirm flow before being written.

type Income struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date        time.Time `gorm:"type:date" json:"date"`
	Value       int64     `json:"value"`
	Description string    `gorm:"size:100" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

type Expense struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date        time.Time `gorm:"type:date" json:"date"`
	Value       int64     `json:"value"`
	Description string    `gorm:"size:110" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
