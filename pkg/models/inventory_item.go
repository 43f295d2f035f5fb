package models

import "time"

type InventoryItem struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

func (i *InventoryItem) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   i.ID,
		ResourceType: "inventory_item",
	}
}

type InventoryItemChanges struct {
	Name        *string
	Description *string
	Quantity    *int
	Price       *float64
}

func (i *InventoryItemChanges) HasChanges() bool {
	return i.Name != nil || i.Description != nil || i.Quantity != nil || i.Price != nil
}
