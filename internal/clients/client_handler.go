package clients

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

type ClientHandler struct {
	repository ClientRepository
	auditLog   *auditlog.Auditlog
	log        *zap.Logger
}

func NewHandler(r ClientRepository, auditLog *auditlog.Auditlog, log *zap.Logger) *ClientHandler {
	return &ClientHandler{
		repository: r,
		auditLog:   auditLog,
		log:        log,
	}
}

func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	client := router.Group("/client")
	client.POST("/newClient", h.NewClient)
	client.PATCH("/updateClientDetails", h.UpdateClientDetails)
	client.PATCH("/updateClientInvoiceDetails", h.UpdateClientInvoiceDetails)
	client.GET("/getClientDetails/:idClient", h.GetClientDetails)
	client.GET("/getAllClients", h.GetAllClients)
	client.DELETE("/deleteClient/:idClient", h.DeleteClient)
}

// NewClient registers a client. Fiscal fields are stored only when the
// invoice flag is set; with invoice=false they are persisted as NULL no
// matter what the payload carried.
//
// @Summary      Register a client
// @Tags         client
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        payload  body  object  true  "client data"
// @Success      201  {object}  models.Client
// @Failure      400  {object}  map[string]string
// @Router       /client/newClient [post]
func (h *ClientHandler) NewClient(c *gin.Context) {
	var req newClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(http.StatusBadRequest, "name, lastName, phone and invoice fields are required").Write(c)
		return
	}

	client := models.Client{
		Name:     req.Name,
		LastName: req.LastName,
		Phone:    req.Phone,
		Invoice:  *req.Invoice,
	}
	if client.Invoice {
		client.SocialReason = req.SocialReason
		client.Zipcode = req.Zipcode
		client.FiscalRegimen = req.FiscalRegimen
		client.Email = req.Email
	}

	created, err := h.repository.PersistClient(client)
	if err != nil {
		h.log.Error("failed to persist client", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	h.auditLog.Log("create", created, created)
	rest.Created(created).Write(c)
}

// UpdateClientDetails merge-patches the personal fields: omitted fields keep
// their stored value.
//
// @Summary      Update a client's personal details
// @Tags         client
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        payload  body  object  true  "idClient plus fields to change"
// @Success      200  {object}  models.Client
// @Failure      404  {object}  map[string]string
// @Router       /client/updateClientDetails [patch]
func (h *ClientHandler) UpdateClientDetails(c *gin.Context) {
	var req updateClientDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(http.StatusBadRequest, "idClient field required").Write(c)
		return
	}

	changes := &models.ClientChanges{
		Name:     req.Name,
		LastName: req.LastName,
		Phone:    req.Phone,
	}

	h.applyClientUpdate(c, *req.ClientID, changes)
}

// UpdateClientInvoiceDetails toggles the invoice flag and patches the fiscal
// fields. Setting invoice=false clears every fiscal field.
//
// @Summary      Update a client's invoice details
// @Tags         client
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        payload  body  object  true  "idClient, invoice flag and fiscal fields"
// @Success      200  {object}  models.Client
// @Failure      404  {object}  map[string]string
// @Router       /client/updateClientInvoiceDetails [patch]
func (h *ClientHandler) UpdateClientInvoiceDetails(c *gin.Context) {
	var req updateClientInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(http.StatusBadRequest, "idClient and invoice fields are required").Write(c)
		return
	}

	changes := &models.ClientChanges{
		Invoice:       req.Invoice,
		SocialReason:  req.SocialReason,
		Zipcode:       req.Zipcode,
		FiscalRegimen: req.FiscalRegimen,
		Email:         req.Email,
	}

	h.applyClientUpdate(c, *req.ClientID, changes)
}

func (h *ClientHandler) applyClientUpdate(c *gin.Context, clientID int, changes *models.ClientChanges) {
	if changes.HasChanges() {
		if err := h.repository.UpdateClient(clientID, changes); err != nil {
			if errors.Is(err, custom_error.ErrNotFound) {
				rest.Fail(http.StatusNotFound, "No client found with id: "+strconv.Itoa(clientID)).Write(c)
				return
			}
			h.log.Error("failed to update client", zap.Int("idClient", clientID), zap.Error(err))
			rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
			return
		}
	}

	updated, err := h.repository.GetClient(clientID)
	if err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			rest.Fail(http.StatusNotFound, "No client found with id: "+strconv.Itoa(clientID)).Write(c)
			return
		}
		h.log.Error("failed to get updated client", zap.Int("idClient", clientID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	if changes.HasChanges() {
		h.auditLog.Log("update", updated, updated)
	}
	rest.OK(updated).Write(c)
}

// GetClientDetails fetches one client by id.
//
// @Summary      Get a client
// @Tags         client
// @Produce      json
// @Security     Bearer
// @Param        idClient  path  int  true  "client id"
// @Success      200  {object}  models.Client
// @Failure      404  {object}  map[string]string
// @Router       /client/getClientDetails/{idClient} [get]
func (h *ClientHandler) GetClientDetails(c *gin.Context) {
	clientID, err := strconv.Atoi(c.Param("idClient"))
	if err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid client id").Write(c)
		return
	}

	client, err := h.repository.GetClient(clientID)
	if err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			rest.Fail(http.StatusNotFound, "No client found with id: "+strconv.Itoa(clientID)).Write(c)
			return
		}
		h.log.Error("failed to get client", zap.Int("idClient", clientID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	rest.OK(client).Write(c)
}

// GetAllClients lists every client. An empty registry reports 404.
//
// @Summary      List all clients
// @Tags         client
// @Produce      json
// @Security     Bearer
// @Success      200  {array}   models.Client
// @Failure      404  {object}  map[string]string
// @Router       /client/getAllClients [get]
func (h *ClientHandler) GetAllClients(c *gin.Context) {
	clients, err := h.repository.GetClients()
	if err != nil {
		h.log.Error("failed to list clients", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	if len(clients) == 0 {
		rest.Fail(http.StatusNotFound, "No clients registered").Write(c)
		return
	}

	rest.OK(clients).Write(c)
}

// DeleteClient removes a client. Owned vehicles cascade at the storage level.
//
// @Summary      Delete a client
// @Tags         client
// @Produce      json
// @Security     Bearer
// @Param        idClient  path  int  true  "client id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /client/deleteClient/{idClient} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, err := strconv.Atoi(c.Param("idClient"))
	if err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid client id").Write(c)
		return
	}

	if err := h.repository.DeleteClient(clientID); err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			rest.Fail(http.StatusNotFound, "No client found with id: "+strconv.Itoa(clientID)).Write(c)
			return
		}
		h.log.Error("failed to delete client", zap.Int("idClient", clientID), zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	h.auditLog.Log("delete", gin.H{"idClient": clientID}, &models.Client{ID: clientID})
	rest.OK(gin.H{"message": "Client deleted"}).Write(c)
}
