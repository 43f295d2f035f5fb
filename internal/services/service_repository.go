package services

import (
	"fmt"

	"github.com/AngelRL115/SEHC/internal/repository"
	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type ServiceRepository interface {
	InsertServiceRecord(tx *goqu.TxDatabase, service models.Service) (int, error)
	InsertServiceItemRecord(tx *goqu.TxDatabase, serviceID, inventoryItemID, quantity int) (*models.ServiceInventoryItem, error)
	DecrementInventoryQuantity(tx *goqu.TxDatabase, inventoryItemID, quantity int) error
	GetServiceRow(id int) (*models.Service, error)
	GetServiceRows() ([]models.Service, error)
	GetServiceItems(serviceID int) ([]models.ServiceInventoryItem, error)
}

type serviceRepository struct {
	repo *repository.Repository
}

func NewRepository(r *repository.Repository) ServiceRepository {
	return &serviceRepository{repo: r}
}

var serviceColumns = []interface{}{
	"id", "vehicle_id", "user_id", "status_id", "type_id", "priority_id",
	"diagnostic", "gas_level", "km", "service_details", "total_cost",
	"service_notes", "created_at", "updated_at",
}

func (r *serviceRepository) InsertServiceRecord(tx *goqu.TxDatabase, service models.Service) (int, error) {
	record := goqu.Record{
		"vehicle_id":    service.VehicleID,
		"user_id":       service.UserID,
		"status_id":     service.StatusID,
		"type_id":       service.TypeID,
		"priority_id":   service.PriorityID,
		"diagnostic":    service.Diagnostic,
		"gas_level":     service.GasLevel,
		"km":            service.Km,
		"total_cost":    service.TotalCost,
		"service_notes": service.ServiceNotes,
	}
	if service.ServiceDetails != nil {
		record["service_details"] = []byte(service.ServiceDetails)
	}

	query := tx.Insert("services").
		Rows(record).
		Returning("id")

	var serviceID int
	if _, err := query.Executor().ScanVal(&serviceID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, custom_error.WrapDBError("Service cannot be saved", string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert service record: %w", err)
	}

	return serviceID, nil
}

func (r *serviceRepository) InsertServiceItemRecord(tx *goqu.TxDatabase, serviceID, inventoryItemID, quantity int) (*models.ServiceInventoryItem, error) {
	query := tx.Insert("service_inventory_items").
		Rows(goqu.Record{
			"service_id":        serviceID,
			"inventory_item_id": inventoryItemID,
			"quantity":          quantity,
		}).
		Returning("id")

	link := models.ServiceInventoryItem{
		ServiceID:       serviceID,
		InventoryItemID: inventoryItemID,
		Quantity:        quantity,
	}

	if _, err := query.Executor().ScanVal(&link.ID); err != nil {
		return nil, fmt.Errorf("failed to insert service inventory item record: %w", err)
	}

	return &link, nil
}

// DecrementInventoryQuantity consumes stock inside the service-creation
// transaction. The quantity guard in the WHERE clause is what makes
// concurrent consumption of the same item safe: a decrement that would go
// negative matches no row and rolls the whole transaction back.
func (r *serviceRepository) DecrementInventoryQuantity(tx *goqu.TxDatabase, inventoryItemID, quantity int) error {
	query := tx.Update("inventory_items").
		Set(goqu.Record{
			"quantity":   goqu.L("quantity - ?", quantity),
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id": inventoryItemID}).
		Where(goqu.C("quantity").Gte(quantity))

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to decrease quantity for inventory item %d: %w", inventoryItemID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for inventory item %d: %w", inventoryItemID, err)
	}
	if affected == 0 {
		return fmt.Errorf("inventory item %d: %w", inventoryItemID, custom_error.ErrInsufficientStock)
	}

	return nil
}

func (r *serviceRepository) GetServiceRow(id int) (*models.Service, error) {
	var service models.Service

	query := r.repo.GoquDBWrapper.
		Select(serviceColumns...).
		From("services").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&service)
	if err != nil {
		return nil, fmt.Errorf("unable to select service from database: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	return &service, nil
}

func (r *serviceRepository) GetServiceRows() ([]models.Service, error) {
	var services []models.Service

	query := r.repo.GoquDBWrapper.
		Select(serviceColumns...).
		From("services").
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&services); err != nil {
		return nil, fmt.Errorf("unable to select services from database: %w", err)
	}

	return services, nil
}

func (r *serviceRepository) GetServiceItems(serviceID int) ([]models.ServiceInventoryItem, error) {
	var items []models.ServiceInventoryItem

	query := r.repo.GoquDBWrapper.
		Select("id", "service_id", "inventory_item_id", "quantity").
		From("service_inventory_items").
		Where(goqu.Ex{"service_id": serviceID}).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to select service inventory items from database: %w", err)
	}

	return items, nil
}
