package models

import (
	"encoding/json"
	"time"
)

type Service struct {
	ID             int                    `json:"idService" db:"id"`
	VehicleID      int                    `json:"idVehicle" db:"vehicle_id"`
	UserID         int                    `json:"idUser" db:"user_id"`
	StatusID       int                    `json:"idStatus" db:"status_id"`
	TypeID         int                    `json:"idType" db:"type_id"`
	PriorityID     int                    `json:"idPriority" db:"priority_id"`
	Diagnostic     *string                `json:"diagnostic" db:"diagnostic"`
	GasLevel       *string                `json:"gasLevel" db:"gas_level"`
	Km             *string                `json:"km" db:"km"`
	ServiceDetails json.RawMessage        `json:"serviceDetails" db:"service_details"`
	TotalCost      *float64               `json:"totalCost" db:"total_cost"`
	ServiceNotes   *string                `json:"serviceNotes" db:"service_notes"`
	CreatedAt      time.Time              `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time              `json:"updatedAt" db:"updated_at"`
	InventoryItems []ServiceInventoryItem `json:"inventoryItems" db:"-"`
}

func (s *Service) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "service",
	}
}

// ServiceInventoryItem links a service to an inventory item with the quantity
// consumed by the repair.
type ServiceInventoryItem struct {
	ID              int `json:"id" db:"id"`
	ServiceID       int `json:"serviceId" db:"service_id"`
	InventoryItemID int `json:"inventoryItemId" db:"inventory_item_id"`
	Quantity        int `json:"quantity" db:"quantity"`
}
