package services

import (
	"encoding/json"

	"github.com/AngelRL115/SEHC/pkg/models"
)

type createServiceRequest struct {
	VehicleID      *int                 `json:"idVehicle" binding:"required"`
	UserID         *int                 `json:"idUser" binding:"required"`
	StatusID       *int                 `json:"idStatus" binding:"required"`
	TypeID         *int                 `json:"idType" binding:"required"`
	PriorityID     *int                 `json:"idPriority" binding:"required"`
	Diagnostic     *string              `json:"diagnostic"`
	GasLevel       *string              `json:"gasLevel"`
	Km             *string              `json:"km"`
	ServiceDetails json.RawMessage      `json:"serviceDetails"`
	TotalCost      *float64             `json:"totalCost"`
	ServiceNotes   *string              `json:"serviceNotes"`
	InventoryItems []serviceItemRequest `json:"inventoryItems" binding:"omitempty,dive"`
}

// serviceItemRequest is one consumption line: a part and how many of it the
// repair used.
type serviceItemRequest struct {
	InventoryItemID int `json:"inventoryItemId" binding:"required"`
	Quantity        int `json:"quantity" binding:"required,gte=1"`
}

func (r *createServiceRequest) toModel() models.Service {
	return models.Service{
		VehicleID:      *r.VehicleID,
		UserID:         *r.UserID,
		StatusID:       *r.StatusID,
		TypeID:         *r.TypeID,
		PriorityID:     *r.PriorityID,
		Diagnostic:     r.Diagnostic,
		GasLevel:       r.GasLevel,
		Km:             r.Km,
		ServiceDetails: r.ServiceDetails,
		TotalCost:      r.TotalCost,
		ServiceNotes:   r.ServiceNotes,
	}
}
