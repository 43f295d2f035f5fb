package container

import (
	"database/sql"

	auditLogRepo "github.com/AngelRL115/SEHC/internal/auditlog"
	"github.com/AngelRL115/SEHC/internal/clients"
	"github.com/AngelRL115/SEHC/internal/inventory"
	"github.com/AngelRL115/SEHC/internal/repository"
	"github.com/AngelRL115/SEHC/internal/services"
	"github.com/AngelRL115/SEHC/internal/users"
	"github.com/AngelRL115/SEHC/internal/vehicles"
	"github.com/AngelRL115/SEHC/pkg/auditlog"
	"github.com/AngelRL115/SEHC/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Repository       *repository.Repository
	AuditLog         *auditlog.Auditlog
	AuthHandler      *security.AuthHandler
	UserHandler      *users.UsersHandler
	ClientHandler    *clients.ClientHandler
	VehicleHandler   *vehicles.VehicleHandler
	InventoryHandler *inventory.InventoryHandler
	ServiceHandler   *services.ServiceHandler
}

func NewAppContainer(db *sql.DB, log *zap.Logger) *Container {
	repo := repository.NewRepository(db)

	auditRepo := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditRepo, log)

	userRepo := users.NewRepository(repo)
	clientRepo := clients.NewRepository(repo)
	vehicleRepo := vehicles.NewRepository(repo)
	inventoryRepo := inventory.NewRepository(repo)
	serviceRepo := services.NewRepository(repo)

	serviceService := services.NewService(repo, serviceRepo, inventoryRepo, log)

	return &Container{
		Repository:       repo,
		AuditLog:         auditLog,
		AuthHandler:      security.NewAuthHandler(userRepo, log),
		UserHandler:      users.NewHandler(userRepo, log),
		ClientHandler:    clients.NewHandler(clientRepo, auditLog, log),
		VehicleHandler:   vehicles.NewHandler(vehicleRepo, auditLog, log),
		InventoryHandler: inventory.NewHandler(inventoryRepo, auditLog, auditRepo, log),
		ServiceHandler:   services.NewHandler(serviceService, auditLog, log),
	}
}
