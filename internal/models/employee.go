package models

import "time"

const (
	RoleTechnician = "Técnico"
	RoleSecretary  = "Secretaria"

	EmployeeActive   = "Activo"
	EmployeeInactive = "Inactivo"
)

type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Cedula  string `gorm:"size:10;uniqueIndex;not null" json:"cedula"`
	Name    string `gorm:"size:50;not null" json:"name"`
	Surname string `gorm:"size:50;not null" json:"surname"`

	HireDate  time.Time `gorm:"type:date" json:"hire_date"`
	BirthDate time.Time `gorm:"type:date" json:"birth_date"`

	Phone  string `gorm:"size:10" json:"phone"`
	Role   string `gorm:"size:20" json:"role"`
	Salary string `gorm:"size:8" json:"salary"`

	// toggled between Activo/Inactivo, never deleted
	Status string `gorm:"size:10;default:'Activo'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
