package vehicles

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

type VehicleHandler struct {
	repository VehicleRepository
	auditLog   *auditlog.Auditlog
	log        *zap.Logger
}

func NewHandler(r VehicleRepository, auditLog *auditlog.Auditlog, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		repository: r,
		auditLog:   auditLog,
		log:        log,
	}
}

func (h *VehicleHandler) RegisterRoutes(router *gin.RouterGroup) {
	vehicle := router.Group("/vehicle")
	vehicle.POST("/newVehicle", h.NewVehicle)
	vehicle.GET("/getVehicle/:idVehicle", h.GetVehicle)
	vehicle.GET("/getAllVehicles", h.GetAllVehicles)
	vehicle.GET("/getAllVehiclesFromClient/:idClient", h.GetAllVehiclesFromClient)
	vehicle.PATCH("/updateVehicle", h.UpdateVehicle)
	vehicle.DELETE("/deleteVehicle/:idVehicle", h.DeleteVehicle)
}

// NewVehicle registers a vehicle for an existing client.
//
// @Summary      Register a vehicle
// @Tags         vehicle
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        payload  body  object  true  "vehicle data incl. idClient"
// @Success      201  {object}  models.Vehicle
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /vehicle/newVehicle [post]
func (h *VehicleHandler) NewVehicle(c *gin.Context) {
	var req newVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(http.StatusBadRequest, "all vehicle fields are required, check the payload or consult the swagger documentation").Write(c)
		return
	}

	vehicle := models.Vehicle{
		ClientID: *req.ClientID,
		Brand:    req.Brand,
		Model:    req.Model,
		Year:     *req.Year,
		Color:    req.Color,
		Plate:    req.Plate,
		Doors:    *req.Doors,
		Motor:    req.Motor,
	}

	created, err := h.repository.PersistVehicle(vehicle)
	if err != nil {
		var fkErr *custom_error.ForeignKeyViolationError
		var uniqueErr *custom_error.UniqueViolationError
		switch {
		case errors.As(err, &fkErr):
			rest.Fail(http.StatusNotFound, "No client found with id: "+strconv.Itoa(*req.ClientID)).Write(c)
		case errors.As(err, &uniqueErr):
			rest.Fail(http.StatusConflict, "A vehicle with plate "+req.Plate+" already exists").Write(c)
		default:
			h.log.Error("failed to persist vehicle", zap.Error(err))
			rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		}
		return
	}

	h.auditLog.Log("create", created, created)
	rest.Created(created).Write(c)
}

// GetVehicle fetches one vehicle.
//
// @Summary      Get a vehicle
// @Tags         vehicle
// @Produce      json
// @Security     Bearer
// @Param        idVehicle  path  int  true  "vehicle id"
// @Success      200  {object}  models.Vehicle
// @Failure      404  {object}  map[string]string
// @Router       /vehicle/getVehicle/{idVehicle} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicleID, err := strconv.Atoi(c.Param("idVehicle"))
	if err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid vehicle id").Write(c)
		return
	}

	vehicle, err := h.repository.GetVehicle(vehicleID)
	if err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			rest.Fail(http.StatusNotFound, "No vehicle found with id: "+strconv.Itoa(vehicleID)).Write(c)
			return
		}
		h.log.Error("failed to get vehicle", zap.Int("idVehicle", vehicleID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	rest.OK(vehicle).Write(c)
}

// GetAllVehicles lists every registered vehicle.
//
// @Summary      List all vehicles
// @Tags         vehicle
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  models.Vehicle
// @Router       /vehicle/getAllVehicles [get]
func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	vehicles, err := h.repository.GetVehicles()
	if err != nil {
		h.log.Error("failed to list vehicles", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	rest.OK(vehicles).Write(c)
}

// GetAllVehiclesFromClient lists the vehicles owned by one client.
//
// @Summary      List a client's vehicles
// @Tags         vehicle
// @Produce      json
// @Security     Bearer
// @Param        idClient  path  int  true  "client id"
// @Success      200  {array}   models.Vehicle
// @Failure      404  {object}  map[string]string
// @Router       /vehicle/getAllVehiclesFromClient/{idClient} [get]
func (h *VehicleHandler) GetAllVehiclesFromClient(c *gin.Context) {
	clientID, err := strconv.Atoi(c.Param("idClient"))
	if err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid client id").Write(c)
		return
	}

	vehicles, err := h.repository.GetVehiclesByClient(clientID)
	if err != nil {
		h.log.Error("failed to list client vehicles", zap.Int("idClient", clientID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	if len(vehicles) == 0 {
		rest.Fail(http.StatusNotFound, "Vehicles owned by client id "+strconv.Itoa(clientID)+" not found").Write(c)
		return
	}

	rest.OK(vehicles).Write(c)
}

// UpdateVehicle merge-patches a vehicle: omitted fields keep their stored
// value.
//
// @Summary      Update a vehicle
// @Tags         vehicle
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        payload  body  object  true  "idVehicle plus fields to change"
// @Success      200  {object}  models.Vehicle
// @Failure      404  {object}  map[string]string
// @Router       /vehicle/updateVehicle [patch]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(http.StatusBadRequest, "idVehicle field required").Write(c)
		return
	}

	changes := &models.VehicleChanges{
		Brand: req.Brand,
		Model: req.Model,
		Year:  req.Year,
		Color: req.Color,
		Plate: req.Plate,
		Doors: req.Doors,
		Motor: req.Motor,
	}

	vehicleID := *req.VehicleID
	if changes.HasChanges() {
		if err := h.repository.UpdateVehicle(vehicleID, changes); err != nil {
			var uniqueErr *custom_error.UniqueViolationError
			switch {
			case errors.Is(err, custom_error.ErrNotFound):
				rest.Fail(http.StatusNotFound, "No vehicle found with id: "+strconv.Itoa(vehicleID)).Write(c)
			case errors.As(err, &uniqueErr):
				rest.Fail(http.StatusConflict, "A vehicle with that plate already exists").Write(c)
			default:
				h.log.Error("failed to update vehicle", zap.Int("idVehicle", vehicleID), zap.Error(err))
				rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
			}
			return
		}
	}

	updated, err := h.repository.GetVehicle(vehicleID)
	if err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			rest.Fail(http.StatusNotFound, "No vehicle found with id: "+strconv.Itoa(vehicleID)).Write(c)
			return
		}
		h.log.Error("failed to get updated vehicle", zap.Int("idVehicle", vehicleID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	if changes.HasChanges() {
		h.auditLog.Log("update", updated, updated)
	}
	rest.OK(updated).Write(c)
}

// DeleteVehicle removes a vehicle.
//
// @Summary      Delete a vehicle
// @Tags         vehicle
// @Produce      json
// @Security     Bearer
// @Param        idVehicle  path  int  true  "vehicle id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /vehicle/deleteVehicle/{idVehicle} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	vehicleID, err := strconv.Atoi(c.Param("idVehicle"))
	if err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid vehicle id").Write(c)
		return
	}

	if err := h.repository.DeleteVehicle(vehicleID); err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			rest.Fail(http.StatusNotFound, "No vehicle found with id: "+strconv.Itoa(vehicleID)).Write(c)
			return
		}
		h.log.Error("failed to delete vehicle", zap.Int("idVehicle", vehicleID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	h.auditLog.Log("delete", gin.H{"idVehicle": vehicleID}, &models.Vehicle{ID: vehicleID})
	rest.OK(gin.H{"message": "Vehicle deleted"}).Write(c)
}
