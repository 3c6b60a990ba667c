package models

import "time"

type Watch struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Brand     string `gorm:"size:30;not null" json:"brand"`
	Reference string `gorm:"size:30;not null" json:"reference"`

	Price int64 `json:"price"`
	// derived: 20% of price, recomputed on every save, never client-supplied
	Commission int64 `json:"commission"`

	Owner       string `gorm:"size:50" json:"owner"`
	Description string `gorm:"size:150" json:"description"`

	Condition string `gorm:"size:20" json:"condition"`
	Status    string `gorm:"size:20;default:'Disponible'" json:"status"`

	SaleDate *time.Time `gorm:"type:date" json:"sale_date"`
	Paid     bool       `gorm:"default:false" json:"paid"`

	ClientID *uint   `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	PhotoURL string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
