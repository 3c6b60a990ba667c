package dto

import (
	"time"

	"github.com/RelojeriaCentral/taller-api/internal/models"
)

type RepairOrderListDTO struct {
	ID                uint      `json:"id"`
	OrderCode         string    `json:"order_code"`
	Status            string    `json:"status"`
	WatchBrand        string    `json:"watch_brand"`
	ClientName        string    `json:"client_name"`
	ClientPhone       string    `json:"client_phone"`
	TechnicianName    string    `json:"technician_name"`
	IngressDate       time.Time `json:"ingress_date"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	Price             int64     `json:"price"`
	Location          string    `json:"location"`
}

func FromRepairOrder(o models.RepairOrder) RepairOrderListDTO {
	return RepairOrderListDTO{
		ID:                o.ID,
		OrderCode:         o.OrderCode,
		Status:            o.Status,
		WatchBrand:        o.WatchBrand,
		ClientName:        o.Client.Name + " " + o.Client.Surname,
		ClientPhone:       o.Client.Phone,
		TechnicianName:    o.Technician.Name + " " + o.Technician.Surname,
		IngressDate:       o.IngressDate,
		EstimatedDelivery: o.EstimatedDelivery,
		Price:             o.Price,
		Location:          o.Location,
	}
}
