package vehicles

import (
	"fmt"

	"github.com/AngelRL115/SEHC/internal/repository"
	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type VehicleRepository interface {
	PersistVehicle(vehicle models.Vehicle) (*models.Vehicle, error)
	GetVehicle(id int) (*models.Vehicle, error)
	GetVehicles() ([]models.Vehicle, error)
	GetVehiclesByClient(clientID int) ([]models.Vehicle, error)
	UpdateVehicle(id int, changes *models.VehicleChanges) error
	DeleteVehicle(id int) error
}

type vehicleRepository struct {
	repo *repository.Repository
}

func NewRepository(r *repository.Repository) VehicleRepository {
	return &vehicleRepository{repo: r}
}

var vehicleColumns = []interface{}{
	"id", "client_id", "brand", "model", "year", "color",
	"plate", "doors", "motor", "created_at", "updated_at",
}

func (r *vehicleRepository) PersistVehicle(vehicle models.Vehicle) (*models.Vehicle, error) {
	query := r.repo.GoquDBWrapper.Insert("vehicles").
		Rows(goqu.Record{
			"client_id": vehicle.ClientID,
			"brand":     vehicle.Brand,
			"model":     vehicle.Model,
			"year":      vehicle.Year,
			"color":     vehicle.Color,
			"plate":     vehicle.Plate,
			"doors":     vehicle.Doors,
			"motor":     vehicle.Motor,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&vehicle.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Vehicle cannot be saved", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert vehicle record: %w", err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) GetVehicle(id int) (*models.Vehicle, error) {
	var vehicle models.Vehicle

	query := r.repo.GoquDBWrapper.
		Select(vehicleColumns...).
		From("vehicles").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&vehicle)
	if err != nil {
		return nil, fmt.Errorf("unable to select vehicle from database: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	return &vehicle, nil
}

func (r *vehicleRepository) GetVehicles() ([]models.Vehicle, error) {
	return r.fetchVehiclesByCondition(nil)
}

func (r *vehicleRepository) GetVehiclesByClient(clientID int) ([]models.Vehicle, error) {
	return r.fetchVehiclesByCondition(goqu.Ex{"client_id": clientID})
}

func (r *vehicleRepository) fetchVehiclesByCondition(condition goqu.Ex) ([]models.Vehicle, error) {
	query := r.repo.GoquDBWrapper.
		Select(vehicleColumns...).
		From("vehicles").
		Order(goqu.I("id").Asc())

	if condition != nil {
		query = query.Where(condition)
	}

	var vehicles []models.Vehicle
	if err := query.Executor().ScanStructs(&vehicles); err != nil {
		return nil, fmt.Errorf("unable to select vehicles from database: %w", err)
	}

	return vehicles, nil
}

func (r *vehicleRepository) UpdateVehicle(id int, changes *models.VehicleChanges) error {
	record := goqu.Record{}

	if changes.Brand != nil {
		record["brand"] = *changes.Brand
	}
	if changes.Model != nil {
		record["model"] = *changes.Model
	}
	if changes.Year != nil {
		record["year"] = *changes.Year
	}
	if changes.Color != nil {
		record["color"] = *changes.Color
	}
	if changes.Plate != nil {
		record["plate"] = *changes.Plate
	}
	if changes.Doors != nil {
		record["doors"] = *changes.Doors
	}
	if changes.Motor != nil {
		record["motor"] = *changes.Motor
	}

	if len(record) == 0 {
		return nil
	}
	record["updated_at"] = goqu.L("NOW()")

	query := r.repo.GoquDBWrapper.
		Update("vehicles").
		Set(record).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Vehicle cannot be updated", string(pqErr.Code))
		}
		return fmt.Errorf("failed to update vehicle %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for vehicle %d: %w", id, err)
	}
	if affected == 0 {
		return custom_error.ErrNotFound
	}

	return nil
}

func (r *vehicleRepository) DeleteVehicle(id int) error {
	query := r.repo.GoquDBWrapper.
		Delete("vehicles").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete vehicle %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for vehicle %d: %w", id, err)
	}
	if affected == 0 {
		return custom_error.ErrNotFound
	}

	return nil
}
