package models

import "time"

type Vehicle struct {
	ID        int       `json:"idVehicle" db:"id"`
	ClientID  int       `json:"idClient" db:"client_id"`
	Brand     string    `json:"brand" db:"brand"`
	Model     string    `json:"model" db:"model"`
	Year      int       `json:"year" db:"year"`
	Color     string    `json:"color" db:"color"`
	Plate     string    `json:"plate" db:"plate"`
	Doors     int       `json:"doors" db:"doors"`
	Motor     string    `json:"motor" db:"motor"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (v *Vehicle) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   v.ID,
		ResourceType: "vehicle",
	}
}

type VehicleChanges struct {
	Brand *string
	Model *string
	Year  *int
	Color *string
	Plate *string
	Doors *int
	Motor *string
}

func (v *VehicleChanges) HasChanges() bool {
	return v.Brand != nil || v.Model != nil || v.Year != nil ||
		v.Color != nil || v.Plate != nil || v.Doors != nil || v.Motor != nil
}
