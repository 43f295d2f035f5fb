package services

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

type ServiceHandler struct {
	service  *ServiceService
	auditLog *auditlog.Auditlog
	log      *zap.Logger
}

func NewHandler(service *ServiceService, auditLog *auditlog.Auditlog, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{
		service:  service,
		auditLog: auditLog,
		log:      log,
	}
}

func (h *ServiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	service := router.Group("/service")
	service.POST("", h.CreateService)
	service.GET("", h.GetAllServices)
	service.GET("/:idService", h.GetService)
}

// CreateService opens a service record, optionally consuming inventory.
//
// @Summary      Create a service
// @Tags         service
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        payload  body  object  true  "service data plus optional inventoryItems lines"
// @Success      201  {object}  models.Service
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /service [post]
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(http.StatusBadRequest, "idVehicle, idUser, idStatus, idType, and idPriority are required fields.").Write(c)
		return
	}

	created, err := h.service.CreateService(req)
	if err != nil {
		if errors.Is(err, custom_error.ErrInsufficientStock) {
			rest.Fail(http.StatusConflict, "Not enough items in stock for one or more inventory items.").Write(c)
			return
		}
		h.log.Error("failed to create service", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	h.auditLog.Log("create", created, created)
	rest.Created(created).Write(c)
}

// GetService fetches one service including its consumed inventory lines.
//
// @Summary      Get a service
// @Tags         service
// @Produce      json
// @Security     Bearer
// @Param        idService  path  int  true  "service id"
// @Success      200  {object}  models.Service
// @Failure      404  {object}  map[string]string
// @Router       /service/{idService} [get]
func (h *ServiceHandler) GetService(c *gin.Context) {
	serviceID, err := strconv.Atoi(c.Param("idService"))
	if err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid service id").Write(c)
		return
	}

	service, err := h.service.GetService(serviceID)
	if err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			rest.Fail(http.StatusNotFound, "No service found with id: "+strconv.Itoa(serviceID)).Write(c)
			return
		}
		h.log.Error("failed to get service", zap.Int("idService", serviceID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	rest.OK(service).Write(c)
}

// GetAllServices lists every service record.
//
// @Summary      List services
// @Tags         service
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  models.Service
// @Router       /service [get]
func (h *ServiceHandler) GetAllServices(c *gin.Context) {
	services, err := h.service.GetServices()
	if err != nil {
		h.log.Error("failed to list services", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	if services == nil {
		services = []models.Service{}
	}
	rest.OK(services).Write(c)
}
