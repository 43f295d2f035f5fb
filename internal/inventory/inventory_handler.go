package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AngelRL115/SEHC/pkg/auditlog"
	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/models"
	"github.com/AngelRL115/SEHC/pkg/rest"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HistoryReader provides the audit trail of a single resource.
type HistoryReader interface {
	GetResourceLog(id int, resourceType string) ([]models.AuditLog, error)
}

type InventoryHandler struct {
	repository InventoryRepository
	auditLog   *auditlog.Auditlog
	history    HistoryReader
	log        *zap.Logger
}

func NewHandler(r InventoryRepository, auditLog *auditlog.Auditlog, history HistoryReader, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		repository: r,
		auditLog:   auditLog,
		history:    history,
		log:        log,
	}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inventory := router.Group("/inventory")
	inventory.GET("", h.GetAllInventoryItems)
	inventory.GET("/:id", h.GetInventoryItemByID)
	inventory.GET("/:id/log", h.GetInventoryItemLog)
	inventory.POST("", h.CreateInventoryItem)
	inventory.PUT("/:id", h.UpdateInventoryItem)
	inventory.DELETE("/:id", h.DeleteInventoryItem)
}

// GetAllInventoryItems lists the whole parts inventory.
//
// @Summary      List inventory items
// @Tags         inventory
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  models.InventoryItem
// @Router       /inventory [get]
func (h *InventoryHandler) GetAllInventoryItems(c *gin.Context) {
	items, err := h.repository.GetInventoryItems()
	if err != nil {
		h.log.Error("failed to list inventory items", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	if items == nil {
		items = []models.InventoryItem{}
	}
	rest.OK(items).Write(c)
}

// GetInventoryItemByID fetches one inventory item.
//
// @Summary      Get an inventory item
// @Tags         inventory
// @Produce      json
// @Security     Bearer
// @Param        id  path  int  true  "inventory item id"
// @Success      200  {object}  models.InventoryItem
// @Failure      404  {object}  map[string]string
// @Router       /inventory/{id} [get]
func (h *InventoryHandler) GetInventoryItemByID(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid inventory item id").Write(c)
		return
	}

	item, err := h.repository.GetInventoryItem(itemID)
	if err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			rest.Fail(http.StatusNotFound, "Inventory item not found").Write(c)
			return
		}
		h.log.Error("failed to get inventory item", zap.Int("id", itemID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	rest.OK(item).Write(c)
}

// GetInventoryItemLog returns the audit trail of one inventory item.
//
// @Summary      Get an inventory item's change history
// @Tags         inventory
// @Produce      json
// @Security     Bearer
// @Param        id  path  int  true  "inventory item id"
// @Success      200  {array}  models.AuditLog
// @Router       /inventory/{id}/log [get]
func (h *InventoryHandler) GetInventoryItemLog(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid inventory item id").Write(c)
		return
	}

	logs, err := h.history.GetResourceLog(itemID, "inventory_item")
	if err != nil {
		h.log.Error("failed to get inventory item log", zap.Int("id", itemID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	if logs == nil {
		logs = []models.AuditLog{}
	}
	rest.OK(logs).Write(c)
}

// CreateInventoryItem adds a part to the inventory. Quantity and price are
// bound through pointers so an explicit zero passes validation.
//
// @Summary      Create an inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        payload  body  object  true  "item data"
// @Success      201  {object}  models.InventoryItem
// @Failure      400  {object}  map[string]string
// @Router       /inventory [post]
func (h *InventoryHandler) CreateInventoryItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(http.StatusBadRequest, "Name, quantity, and price are required fields.").Write(c)
		return
	}

	if *req.Quantity < 0 {
		rest.Fail(http.StatusBadRequest, "Quantity cannot be negative").Write(c)
		return
	}

	item := models.InventoryItem{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    *req.Quantity,
		Price:       *req.Price,
	}

	created, err := h.repository.PersistInventoryItem(item)
	if err != nil {
		h.log.Error("failed to persist inventory item", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	h.auditLog.Log("create", created, created)
	rest.Created(created).Write(c)
}

// UpdateInventoryItem merge-patches an inventory item.
//
// @Summary      Update an inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id       path  int     true  "inventory item id"
// @Param        payload  body  object  true  "fields to change"
// @Success      200  {object}  models.InventoryItem
// @Failure      404  {object}  map[string]string
// @Router       /inventory/{id} [put]
func (h *InventoryHandler) UpdateInventoryItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid inventory item id").Write(c)
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid request payload").Write(c)
		return
	}

	if req.Quantity != nil && *req.Quantity < 0 {
		rest.Fail(http.StatusBadRequest, "Quantity cannot be negative").Write(c)
		return
	}

	changes := &models.InventoryItemChanges{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	}

	if changes.HasChanges() {
		if err := h.repository.UpdateInventoryItem(itemID, changes); err != nil {
			if errors.Is(err, custom_error.ErrNotFound) {
				rest.Fail(http.StatusNotFound, "Inventory item not found").Write(c)
				return
			}
			h.log.Error("failed to update inventory item", zap.Int("id", itemID), zap.Error(err))
			rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
			return
		}
	}

	updated, err := h.repository.GetInventoryItem(itemID)
	if err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			rest.Fail(http.StatusNotFound, "Inventory item not found").Write(c)
			return
		}
		h.log.Error("failed to get updated inventory item", zap.Int("id", itemID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	if changes.HasChanges() {
		h.auditLog.Log("update", updated, updated)
	}
	rest.OK(updated).Write(c)
}

// DeleteInventoryItem removes a part from the inventory.
//
// @Summary      Delete an inventory item
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  int  true  "inventory item id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /inventory/{id} [delete]
func (h *InventoryHandler) DeleteInventoryItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid inventory item id").Write(c)
		return
	}

	if err := h.repository.DeleteInventoryItem(itemID); err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			rest.Fail(http.StatusNotFound, "Inventory item not found").Write(c)
			return
		}
		h.log.Error("failed to delete inventory item", zap.Int("id", itemID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	h.auditLog.Log("delete", gin.H{"id": itemID}, &models.InventoryItem{ID: itemID})
	rest.NoContent().Write(c)
}
