package clients

import (
	"fmt"

	"github.com/AngelRL115/SEHC/internal/repository"
	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ClientRepository interface {
	PersistClient(client models.Client) (*models.Client, error)
	GetClient(id int) (*models.Client, error)
	GetClients() ([]models.Client, error)
	UpdateClient(id int, changes *models.ClientChanges) error
	DeleteClient(id int) error
}

type clientRepository struct {
	repo *repository.Repository
}

func NewRepository(r *repository.Repository) ClientRepository {
	return &clientRepository{repo: r}
}

func (r *clientRepository) PersistClient(client models.Client) (*models.Client, error) {
	query := r.repo.GoquDBWrapper.Insert("clients").
		Rows(goqu.Record{
			"name":           client.Name,
			"last_name":      client.LastName,
			"phone":          client.Phone,
			"invoice":        client.Invoice,
			"social_reason":  client.SocialReason,
			"zipcode":        client.Zipcode,
			"fiscal_regimen": client.FiscalRegimen,
			"email":          client.Email,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&client.ID); err != nil {
		return nil, fmt.Errorf("failed to insert client record: %w", err)
	}

	return &client, nil
}

func (r *clientRepository) GetClient(id int) (*models.Client, error) {
	var client models.Client

	query := r.repo.GoquDBWrapper.
		Select("id", "name", "last_name", "phone", "invoice",
			"social_reason", "zipcode", "fiscal_regimen", "email").
		From("clients").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&client)
	if err != nil {
		return nil, fmt.Errorf("unable to select client from database: %w", err)
	}
	if !found {
		return nil, custom_error.ErrNotFound
	}

	return &client, nil
}

func (r *clientRepository) GetClients() ([]models.Client, error) {
	var clients []models.Client

	query := r.repo.GoquDBWrapper.
		Select("id", "name", "last_name", "phone", "invoice",
			"social_reason", "zipcode", "fiscal_regimen", "email").
		From("clients").
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&clients); err != nil {
		return nil, fmt.Errorf("unable to select clients from database: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) UpdateClient(id int, changes *models.ClientChanges) error {
	record := goqu.Record{}

	if changes.Name != nil {
		record["name"] = *changes.Name
	}
	if changes.LastName != nil {
		record["last_name"] = *changes.LastName
	}
	if changes.Phone != nil {
		record["phone"] = *changes.Phone
	}
	if changes.Invoice != nil {
		record["invoice"] = *changes.Invoice
		if !*changes.Invoice {
			// invoice=false means fiscal data no longer applies
			record["social_reason"] = nil
			record["zipcode"] = nil
			record["fiscal_regimen"] = nil
			record["email"] = nil
		}
	}
	if changes.Invoice == nil || *changes.Invoice {
		if changes.SocialReason != nil {
			record["social_reason"] = *changes.SocialReason
		}
		if changes.Zipcode != nil {
			record["zipcode"] = *changes.Zipcode
		}
		if changes.FiscalRegimen != nil {
			record["fiscal_regimen"] = *changes.FiscalRegimen
		}
		if changes.Email != nil {
			record["email"] = *changes.Email
		}
	}

	if len(record) == 0 {
		return nil
	}

	query := r.repo.GoquDBWrapper.
		Update("clients").
		Set(record).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update client %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for client %d: %w", id, err)
	}
	if affected == 0 {
		return custom_error.ErrNotFound
	}

	return nil
}

func (r *clientRepository) DeleteClient(id int) error {
	query := r.repo.GoquDBWrapper.
		Delete("clients").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for client %d: %w", id, err)
	}
	if affected == 0 {
		return custom_error.ErrNotFound
	}

	return nil
}
