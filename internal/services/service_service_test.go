package services

import (
	"errors"
	"testing"

	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) InsertServiceRecord(tx *goqu.TxDatabase, service models.Service) (int, error) {
	args := m.Called(tx, service)
	return args.Int(0), args.Error(1)
}

func (m *MockServiceRepository) InsertServiceItemRecord(tx *goqu.TxDatabase, serviceID, inventoryItemID, quantity int) (*models.ServiceInventoryItem, error) {
	args := m.Called(tx, serviceID, inventoryItemID, quantity)
	if link, ok := args.Get(0).(*models.ServiceInventoryItem); ok {
		return link, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockServiceRepository) DecrementInventoryQuantity(tx *goqu.TxDatabase, inventoryItemID, quantity int) error {
	args := m.Called(tx, inventoryItemID, quantity)
	return args.Error(0)
}

func (m *MockServiceRepository) GetServiceRow(id int) (*models.Service, error) {
	args := m.Called(id)
	if service, ok := args.Get(0).(*models.Service); ok {
		return service, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockServiceRepository) GetServiceRows() ([]models.Service, error) {
	args := m.Called()
	if services, ok := args.Get(0).([]models.Service); ok {
		return services, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockServiceRepository) GetServiceItems(serviceID int) ([]models.ServiceInventoryItem, error) {
	args := m.Called(serviceID)
	if items, ok := args.Get(0).([]models.ServiceInventoryItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockItemReader struct {
	mock.Mock
}

func (m *MockItemReader) GetInventoryItem(id int) (*models.InventoryItem, error) {
	args := m.Called(id)
	if item, ok := args.Get(0).(*models.InventoryItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func intPtr(v int) *int { return &v }

func newTestService(sr ServiceRepository, items ItemReader) *ServiceService {
	return &ServiceService{
		sr:    sr,
		items: items,
		withTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return fn(nil)
		},
		log: zap.NewNop(),
	}
}

func newCreateRequest(lines ...serviceItemRequest) createServiceRequest {
	return createServiceRequest{
		VehicleID:      intPtr(1),
		UserID:         intPtr(2),
		StatusID:       intPtr(1),
		TypeID:         intPtr(1),
		PriorityID:     intPtr(2),
		InventoryItems: lines,
	}
}

func TestCreateService(t *testing.T) {
	mockRepo := new(MockServiceRepository)
	mockItems := new(MockItemReader)
	svc := newTestService(mockRepo, mockItems)

	req := newCreateRequest(
		serviceItemRequest{InventoryItemID: 10, Quantity: 2},
		serviceItemRequest{InventoryItemID: 11, Quantity: 1},
	)

	var tx *goqu.TxDatabase

	mockItems.On("GetInventoryItem", 10).Return(&models.InventoryItem{ID: 10, Quantity: 5}, nil).Once()
	mockItems.On("GetInventoryItem", 11).Return(&models.InventoryItem{ID: 11, Quantity: 1}, nil).Once()

	mockRepo.On("InsertServiceRecord", tx, req.toModel()).Return(42, nil).Once()
	mockRepo.On("InsertServiceItemRecord", tx, 42, 10, 2).
		Return(&models.ServiceInventoryItem{ID: 1, ServiceID: 42, InventoryItemID: 10, Quantity: 2}, nil).Once()
	mockRepo.On("DecrementInventoryQuantity", tx, 10, 2).Return(nil).Once()
	mockRepo.On("InsertServiceItemRecord", tx, 42, 11, 1).
		Return(&models.ServiceInventoryItem{ID: 2, ServiceID: 42, InventoryItemID: 11, Quantity: 1}, nil).Once()
	mockRepo.On("DecrementInventoryQuantity", tx, 11, 1).Return(nil).Once()

	service, err := svc.CreateService(req)

	assert.NoError(t, err)
	assert.Equal(t, 42, service.ID)
	assert.Len(t, service.InventoryItems, 2)
	assert.Equal(t, 10, service.InventoryItems[0].InventoryItemID)

	mockRepo.AssertExpectations(t)
	mockItems.AssertExpectations(t)
}

func TestCreateServiceWithoutInventoryLines(t *testing.T) {
	mockRepo := new(MockServiceRepository)
	mockItems := new(MockItemReader)
	svc := newTestService(mockRepo, mockItems)

	req := newCreateRequest()

	var tx *goqu.TxDatabase
	mockRepo.On("InsertServiceRecord", tx, req.toModel()).Return(7, nil).Once()

	service, err := svc.CreateService(req)

	assert.NoError(t, err)
	assert.Equal(t, 7, service.ID)
	assert.Empty(t, service.InventoryItems)

	mockRepo.AssertExpectations(t)
	mockItems.AssertExpectations(t)
}

func TestCreateServiceRejectsShortStock(t *testing.T) {
	mockRepo := new(MockServiceRepository)
	mockItems := new(MockItemReader)
	svc := newTestService(mockRepo, mockItems)

	req := newCreateRequest(serviceItemRequest{InventoryItemID: 10, Quantity: 5})

	mockItems.On("GetInventoryItem", 10).Return(&models.InventoryItem{ID: 10, Quantity: 3}, nil).Once()

	service, err := svc.CreateService(req)

	assert.Nil(t, service)
	assert.ErrorIs(t, err, custom_error.ErrInsufficientStock)

	// the pre-check failed, so the transaction never opened
	mockRepo.AssertNotCalled(t, "InsertServiceRecord", mock.Anything, mock.Anything)
	mockItems.AssertExpectations(t)
}

func TestCreateServiceRejectsUnknownItem(t *testing.T) {
	mockRepo := new(MockServiceRepository)
	mockItems := new(MockItemReader)
	svc := newTestService(mockRepo, mockItems)

	req := newCreateRequest(serviceItemRequest{InventoryItemID: 99, Quantity: 1})

	mockItems.On("GetInventoryItem", 99).Return(nil, custom_error.ErrNotFound).Once()

	service, err := svc.CreateService(req)

	assert.Nil(t, service)
	assert.ErrorIs(t, err, custom_error.ErrInsufficientStock)

	mockRepo.AssertNotCalled(t, "InsertServiceRecord", mock.Anything, mock.Anything)
	mockItems.AssertExpectations(t)
}

func TestCreateServiceRollsBackOnDecrementConflict(t *testing.T) {
	mockRepo := new(MockServiceRepository)
	mockItems := new(MockItemReader)
	svc := newTestService(mockRepo, mockItems)

	req := newCreateRequest(serviceItemRequest{InventoryItemID: 10, Quantity: 2})

	var tx *goqu.TxDatabase

	// stock looked fine at check time but was consumed before the decrement
	mockItems.On("GetInventoryItem", 10).Return(&models.InventoryItem{ID: 10, Quantity: 2}, nil).Once()
	mockRepo.On("InsertServiceRecord", tx, req.toModel()).Return(42, nil).Once()
	mockRepo.On("InsertServiceItemRecord", tx, 42, 10, 2).
		Return(&models.ServiceInventoryItem{ID: 1, ServiceID: 42, InventoryItemID: 10, Quantity: 2}, nil).Once()
	mockRepo.On("DecrementInventoryQuantity", tx, 10, 2).
		Return(custom_error.ErrInsufficientStock).Once()

	service, err := svc.CreateService(req)

	assert.Nil(t, service)
	assert.ErrorIs(t, err, custom_error.ErrInsufficientStock)

	mockRepo.AssertExpectations(t)
	mockItems.AssertExpectations(t)
}

func TestCreateServiceFailsWhenInsertFails(t *testing.T) {
	mockRepo := new(MockServiceRepository)
	mockItems := new(MockItemReader)
	svc := newTestService(mockRepo, mockItems)

	req := newCreateRequest()

	var tx *goqu.TxDatabase
	mockRepo.On("InsertServiceRecord", tx, req.toModel()).
		Return(0, errors.New("failed to insert service record")).Once()

	service, err := svc.CreateService(req)

	assert.Nil(t, service)
	assert.Error(t, err)

	mockRepo.AssertExpectations(t)
}

func TestGetService(t *testing.T) {
	mockRepo := new(MockServiceRepository)
	mockItems := new(MockItemReader)
	svc := newTestService(mockRepo, mockItems)

	mockRepo.On("GetServiceRow", 42).Return(&models.Service{ID: 42, VehicleID: 1}, nil).Once()
	mockRepo.On("GetServiceItems", 42).Return([]models.ServiceInventoryItem{
		{ID: 1, ServiceID: 42, InventoryItemID: 10, Quantity: 2},
	}, nil).Once()

	service, err := svc.GetService(42)

	assert.NoError(t, err)
	assert.Equal(t, 42, service.ID)
	assert.Len(t, service.InventoryItems, 1)

	mockRepo.AssertExpectations(t)
}

func TestGetServiceNotFound(t *testing.T) {
	mockRepo := new(MockServiceRepository)
	mockItems := new(MockItemReader)
	svc := newTestService(mockRepo, mockItems)

	mockRepo.On("GetServiceRow", 404).Return(nil, custom_error.ErrNotFound).Once()

	service, err := svc.GetService(404)

	assert.Nil(t, service)
	assert.ErrorIs(t, err, custom_error.ErrNotFound)

	mockRepo.AssertNotCalled(t, "GetServiceItems", mock.Anything)
	mockRepo.AssertExpectations(t)
}
