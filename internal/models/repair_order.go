package models

import "time"

type RepairOrder struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	TechnicianID uint     `json:"technician_id"`
	Technician   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"technician"`

	WatchBrand  string `gorm:"size:30" json:"watch_brand"`
	Description string `gorm:"size:500" json:"description"`

	OrderCode string `gorm:"size:10;uniqueIndex;not null" json:"order_code"`

	// set at creation, never updated afterwards
	IngressDate       time.Time `gorm:"type:date" json:"ingress_date"`
	EstimatedDelivery time.Time `gorm:"type:date" json:"estimated_delivery"`

	Price    int64  `json:"price"`
	Location string `gorm:"size:50" json:"location"`

	Status string `gorm:"size:15;default:'Cotización'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
