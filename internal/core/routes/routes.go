package routes

import (
	"github.com/AngelRL115/SEHC/internal/core/container"
	"github.com/AngelRL115/SEHC/internal/middleware"
	"github.com/AngelRL115/SEHC/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterPublicRoutes mounts the routes reachable without a bearer token.
func RegisterPublicRoutes(base *gin.RouterGroup, c *container.Container) {
	c.AuthHandler.RegisterRoutes(base)
}

// RegisterProtectedRoutes mounts everything behind the JWT middleware.
func RegisterProtectedRoutes(base *gin.RouterGroup, c *container.Container) {
	protected := base.Group("")
	protected.Use(security.JWTMiddleware())

	c.UserHandler.RegisterRoutes(protected)
	c.ClientHandler.RegisterRoutes(protected)
	c.VehicleHandler.RegisterRoutes(protected)
	c.InventoryHandler.RegisterRoutes(protected)
	c.ServiceHandler.RegisterRoutes(protected)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
