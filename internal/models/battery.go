package models

import "time"

type Battery struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code  string `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Price string `gorm:"size:6" json:"price"`

	// only the sale recorder may decrement this
	Quantity int `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BatterySale is an immutable sale line: created once inside the same
// transaction that decrements the battery stock, never updated.
type BatterySale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BatteryID uint    `json:"battery_id"`
	Battery   Battery `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"battery"`

	Quantity int       `gorm:"not null" json:"quantity"`
	SoldAt   time.Time `json:"sold_at"`
}
