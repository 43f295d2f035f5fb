package inventory

import (
	"fmt"

	"github.com/AngelRL115/SEHC/internal/repository"
	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type InventoryRepository interface {
	PersistInventoryItem(item models.InventoryItem) (*models.InventoryItem, error)
	GetInventoryItem(id int) (*models.InventoryItem, error)
	GetInventoryItems() ([]models.InventoryItem, error)
	UpdateInventoryItem(id int, changes *models.InventoryItemChanges) error
	DeleteInventoryItem(id int) error
}

type inventoryRepository struct {
	repo *repository.Repository
}

func NewRepository(r *repository.Repository) InventoryRepository {
	return &inventoryRepository{repo: r}
}

var itemColumns = []interface{}{
	"id", "name", "description", "quantity", "price", "created_at", "updated_at",
}

func (r *inventoryRepository) PersistInventoryItem(item models.InventoryItem) (*models.InventoryItem, error) {
	query := r.repo.GoquDBWrapper.Insert("inventory_items").
		Rows(goqu.Record{
			"name":        item.Name,
			"description": item.Description,
			"quantity":    item.Quantity,
			"price":       item.Price,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&item.ID); err != nil {
		return nil, fmt.Errorf("failed to insert inventory item record: %w", err)
	}

	return &item, nil
}

func (r *inventoryRepository) GetInventoryItem(id int) (*models.InventoryItem, error) {
	var item models.InventoryItem

	query := r.repo.GoquDBWrapper.
		Select(itemColumns...).
		From("inventory_items").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, fmt.Errorf("unable to select inventory item from database: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	return &item, nil
}

func (r *inventoryRepository) GetInventoryItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem

	query := r.repo.GoquDBWrapper.
		Select(itemColumns...).
		From("inventory_items").
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to select inventory items from database: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) UpdateInventoryItem(id int, changes *models.InventoryItemChanges) error {
	record := goqu.Record{}

	if changes.Name != nil {
		record["name"] = *changes.Name
	}
	if changes.Description != nil {
		record["description"] = *changes.Description
	}
	if changes.Quantity != nil {
		record["quantity"] = *changes.Quantity
	}
	if changes.Price != nil {
		record["price"] = *changes.Price
	}

	if len(record) == 0 {
		return nil
	}
	record["updated_at"] = goqu.L("NOW()")

	query := r.repo.GoquDBWrapper.
		Update("inventory_items").
		Set(record).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update inventory item %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for inventory item %d: %w", id, err)
	}
	if affected == 0 {
		return custom_error.ErrNotFound
	}

	return nil
}

func (r *inventoryRepository) DeleteInventoryItem(id int) error {
	query := r.repo.GoquDBWrapper.
		Delete("inventory_items").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete inventory item %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for inventory item %d: %w", id, err)
	}
	if affected == 0 {
		return custom_error.ErrNotFound
	}

	return nil
}
