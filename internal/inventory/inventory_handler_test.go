package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AngelRL115/SEHC/pkg/auditlog"
	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) PersistInventoryItem(item models.InventoryItem) (*models.InventoryItem, error) {
	args := m.Called(item)
	if created, ok := args.Get(0).(*models.InventoryItem); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryRepository) GetInventoryItem(id int) (*models.InventoryItem, error) {
	args := m.Called(id)
	if item, ok := args.Get(0).(*models.InventoryItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryRepository) GetInventoryItems() ([]models.InventoryItem, error) {
	args := m.Called()
	if items, ok := args.Get(0).([]models.InventoryItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryRepository) UpdateInventoryItem(id int, changes *models.InventoryItemChanges) error {
	args := m.Called(id, changes)
	return args.Error(0)
}

func (m *MockInventoryRepository) DeleteInventoryItem(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockLogPersister struct {
	mock.Mock
}

func (m *MockLogPersister) PersistLog(log models.AuditLog, data interface{}) error {
	args := m.Called(log, data)
	return args.Error(0)
}

type MockHistoryReader struct {
	mock.Mock
}

func (m *MockHistoryReader) GetResourceLog(id int, resourceType string) ([]models.AuditLog, error) {
	args := m.Called(id, resourceType)
	if logs, ok := args.Get(0).([]models.AuditLog); ok {
		return logs, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestHandler(repo InventoryRepository) *InventoryHandler {
	persister := new(MockLogPersister)
	persister.On("PersistLog", mock.Anything, mock.Anything).Return(nil)
	return NewHandler(repo, auditlog.NewAuditLog(persister, zap.NewNop()), new(MockHistoryReader), zap.NewNop())
}

func newTestHandlerWithHistory(repo InventoryRepository, history HistoryReader) *InventoryHandler {
	persister := new(MockLogPersister)
	persister.On("PersistLog", mock.Anything, mock.Anything).Return(nil)
	return NewHandler(repo, auditlog.NewAuditLog(persister, zap.NewNop()), history, zap.NewNop())
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(s string) *string { return &s }

func TestCreateInventoryItem(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockInventoryRepository)
	handler := newTestHandler(mockRepo)

	tests := []struct {
		name           string
		payload        createItemRequest
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "successful creation",
			payload: createItemRequest{
				Name:        "Oil filter",
				Description: stringPtr("15400-PLM-A02"),
				Quantity:    intPtr(12),
				Price:       floatPtr(249.90),
			},
			setupMock: func() {
				mockRepo.On("PersistInventoryItem", mock.MatchedBy(func(i models.InventoryItem) bool {
					return i.Name == "Oil filter" && i.Quantity == 12
				})).Return(&models.InventoryItem{ID: 1, Name: "Oil filter", Quantity: 12}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "zero quantity is allowed",
			payload: createItemRequest{
				Name:     "Brake pads",
				Quantity: intPtr(0),
				Price:    floatPtr(899.00),
			},
			setupMock: func() {
				mockRepo.On("PersistInventoryItem", mock.MatchedBy(func(i models.InventoryItem) bool {
					return i.Quantity == 0
				})).Return(&models.InventoryItem{ID: 2, Name: "Brake pads"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "negative quantity rejected",
			payload: createItemRequest{
				Name:     "Brake pads",
				Quantity: intPtr(-1),
				Price:    floatPtr(899.00),
			},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing price",
			payload: createItemRequest{
				Name:     "Brake pads",
				Quantity: intPtr(4),
			},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "repository error",
			payload: createItemRequest{
				Name:     "Brake pads",
				Quantity: intPtr(4),
				Price:    floatPtr(899.00),
			},
			setupMock: func() {
				mockRepo.On("PersistInventoryItem", mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("POST", "/inventory", bytes.NewBuffer(body))

			handler.CreateInventoryItem(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUpdateInventoryItem(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockInventoryRepository)
	handler := newTestHandler(mockRepo)

	tests := []struct {
		name           string
		itemID         string
		payload        updateItemRequest
		setupMock      func()
		expectedStatus int
	}{
		{
			name:    "partial update",
			itemID:  "1",
			payload: updateItemRequest{Price: floatPtr(199.00)},
			setupMock: func() {
				mockRepo.On("UpdateInventoryItem", 1, mock.MatchedBy(func(ch *models.InventoryItemChanges) bool {
					return ch.Name == nil && ch.Quantity == nil &&
						ch.Price != nil && *ch.Price == 199.00
				})).Return(nil)
				mockRepo.On("GetInventoryItem", 1).Return(&models.InventoryItem{ID: 1, Price: 199.00}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "empty patch returns the stored item untouched",
			itemID:  "1",
			payload: updateItemRequest{},
			setupMock: func() {
				mockRepo.On("GetInventoryItem", 1).Return(&models.InventoryItem{ID: 1, Name: "Oil filter"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "negative quantity rejected",
			itemID:         "1",
			payload:        updateItemRequest{Quantity: intPtr(-5)},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "item not found",
			itemID:  "999",
			payload: updateItemRequest{Quantity: intPtr(3)},
			setupMock: func() {
				mockRepo.On("UpdateInventoryItem", 999, mock.Anything).Return(custom_error.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			itemID:         "abc",
			payload:        updateItemRequest{},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("PUT", "/inventory/"+tt.itemID, bytes.NewBuffer(body))
			c.Params = []gin.Param{{Key: "id", Value: tt.itemID}}

			handler.UpdateInventoryItem(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetInventoryItemByID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockInventoryRepository)
	handler := newTestHandler(mockRepo)

	tests := []struct {
		name           string
		itemID         string
		setupMock      func()
		expectedStatus int
	}{
		{
			name:   "found",
			itemID: "1",
			setupMock: func() {
				mockRepo.On("GetInventoryItem", 1).Return(&models.InventoryItem{ID: 1, Name: "Oil filter"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "not found",
			itemID: "999",
			setupMock: func() {
				mockRepo.On("GetInventoryItem", 999).Return(nil, custom_error.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			itemID:         "abc",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			c.Request = httptest.NewRequest("GET", "/inventory/"+tt.itemID, nil)
			c.Params = []gin.Param{{Key: "id", Value: tt.itemID}}

			handler.GetInventoryItemByID(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetAllInventoryItems(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockInventoryRepository)
	handler := newTestHandler(mockRepo)

	t.Run("empty inventory returns empty list", func(t *testing.T) {
		mockRepo.ExpectedCalls = nil
		mockRepo.On("GetInventoryItems").Return(nil, nil)
		c, w := setupTestContext()
		c.Request = httptest.NewRequest("GET", "/inventory", nil)

		handler.GetAllInventoryItems(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.ExpectedCalls = nil
		mockRepo.On("GetInventoryItems").Return(nil, errors.New("db error"))
		c, w := setupTestContext()
		c.Request = httptest.NewRequest("GET", "/inventory", nil)

		handler.GetAllInventoryItems(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetInventoryItemLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockInventoryRepository)
	mockHistory := new(MockHistoryReader)
	handler := newTestHandlerWithHistory(mockRepo, mockHistory)

	t.Run("returns the item's trail", func(t *testing.T) {
		mockHistory.ExpectedCalls = nil
		mockHistory.On("GetResourceLog", 1, "inventory_item").Return([]models.AuditLog{
			{ID: 1, ResourceID: 1, ResourceType: "inventory_item", Action: "create"},
			{ID: 2, ResourceID: 1, ResourceType: "inventory_item", Action: "update"},
		}, nil)
		c, w := setupTestContext()
		c.Request = httptest.NewRequest("GET", "/inventory/1/log", nil)
		c.Params = []gin.Param{{Key: "id", Value: "1"}}

		handler.GetInventoryItemLog(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"action":"update"`)
		mockHistory.AssertExpectations(t)
	})

	t.Run("no entries yields an empty list", func(t *testing.T) {
		mockHistory.ExpectedCalls = nil
		mockHistory.On("GetResourceLog", 2, "inventory_item").Return(nil, nil)
		c, w := setupTestContext()
		c.Request = httptest.NewRequest("GET", "/inventory/2/log", nil)
		c.Params = []gin.Param{{Key: "id", Value: "2"}}

		handler.GetInventoryItemLog(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestDeleteInventoryItem(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockInventoryRepository)
	handler := newTestHandler(mockRepo)

	tests := []struct {
		name           string
		itemID         string
		setupMock      func()
		expectedStatus int
	}{
		{
			name:   "successful deletion",
			itemID: "1",
			setupMock: func() {
				mockRepo.On("DeleteInventoryItem", 1).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "not found",
			itemID: "999",
			setupMock: func() {
				mockRepo.On("DeleteInventoryItem", 999).Return(custom_error.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			c.Request = httptest.NewRequest("DELETE", "/inventory/"+tt.itemID, nil)
			c.Params = []gin.Param{{Key: "id", Value: tt.itemID}}

			handler.DeleteInventoryItem(c)
			// CreateTestContext never flushes a body-less status; the real
			// engine does this after handlers run.
			c.Writer.WriteHeaderNow()

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}
