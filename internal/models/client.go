package models

import "time"

// Client is a walk-in customer. Clients are never deleted; repair orders
// and watch sales keep pointing at them.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:20;not null" json:"name"`
	Surname string `gorm:"size:30;not null" json:"surname"`
	Phone   string `gorm:"size:10;not null" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
