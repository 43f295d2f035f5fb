package services

import (
	"errors"
	"fmt"

	"github.com/AngelRL115/SEHC/internal/repository"
	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"
)

// ItemReader is the slice of the inventory repository the orchestrator needs
// for its stock pre-check.
type ItemReader interface {
	GetInventoryItem(id int) (*models.InventoryItem, error)
}

type ServiceService struct {
	sr     ServiceRepository
	items  ItemReader
	withTx func(fn func(tx *goqu.TxDatabase) error) error
	log    *zap.Logger
}

func NewService(r *repository.Repository, sr ServiceRepository, items ItemReader, log *zap.Logger) *ServiceService {
	return &ServiceService{
		sr:    sr,
		items: items,
		withTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return repository.WithTransaction(r.GoquDBWrapper, fn)
		},
		log: log,
	}
}

// CreateService runs the service-creation workflow: an advisory stock
// pre-check, then one all-or-nothing transaction that inserts the service
// row, one link row per consumed part, and decrements each part's stock.
//
// The pre-check keeps obviously impossible requests from opening a
// transaction, but stock can change between the check and the transaction
// under concurrent load. The authoritative guard is the conditional
// decrement inside the transaction (plus the non-negative CHECK on the
// column): if it matches no row, everything rolls back and no service, link
// row, or quantity change persists.
func (s *ServiceService) CreateService(req createServiceRequest) (*models.Service, error) {
	for _, line := range req.InventoryItems {
		item, err := s.items.GetInventoryItem(line.InventoryItemID)
		if err != nil {
			if errors.Is(err, custom_error.ErrNotFound) {
				return nil, fmt.Errorf("inventory item %d: %w", line.InventoryItemID, custom_error.ErrInsufficientStock)
			}
			return nil, fmt.Errorf("failed to check stock for inventory item %d: %w", line.InventoryItemID, err)
		}
		if item.Quantity < line.Quantity {
			return nil, fmt.Errorf("inventory item %d: %w", line.InventoryItemID, custom_error.ErrInsufficientStock)
		}
	}

	service := req.toModel()

	err := s.withTx(func(tx *goqu.TxDatabase) error {
		serviceID, err := s.sr.InsertServiceRecord(tx, service)
		if err != nil {
			return fmt.Errorf("failed to insert service record: %w", err)
		}
		service.ID = serviceID

		for _, line := range req.InventoryItems {
			link, err := s.sr.InsertServiceItemRecord(tx, serviceID, line.InventoryItemID, line.Quantity)
			if err != nil {
				return fmt.Errorf("failed to link inventory item %d: %w", line.InventoryItemID, err)
			}
			service.InventoryItems = append(service.InventoryItems, *link)

			if err := s.sr.DecrementInventoryQuantity(tx, line.InventoryItemID, line.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("service created",
		zap.Int("idService", service.ID),
		zap.Int("idVehicle", service.VehicleID),
		zap.Int("inventoryLines", len(service.InventoryItems)),
	)

	return &service, nil
}

func (s *ServiceService) GetService(id int) (*models.Service, error) {
	service, err := s.sr.GetServiceRow(id)
	if err != nil {
		return nil, err
	}

	items, err := s.sr.GetServiceItems(id)
	if err != nil {
		return nil, err
	}
	service.InventoryItems = items

	return service, nil
}

func (s *ServiceService) GetServices() ([]models.Service, error) {
	return s.sr.GetServiceRows()
}
