package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/marcomamdouh99/pro/internal/core/container"
	"github.com/marcomamdouh99/pro/internal/middleware"
	"github.com/marcomamdouh99/pro/pkg/security"
)

func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("/api")
	protectedRoutes.Use(security.JWTMiddleware())

	container.IngredientHandler.RegisterRoutes(protectedRoutes)
	container.BranchHandler.RegisterRoutes(protectedRoutes)
	container.SupplierHandler.RegisterRoutes(protectedRoutes)
	container.LedgerHandler.RegisterRoutes(protectedRoutes)
	container.OrderHandler.RegisterRoutes(protectedRoutes)
	container.TransferHandler.RegisterRoutes(protectedRoutes)
	container.WasteHandler.RegisterRoutes(protectedRoutes)
	container.ReportHandler.RegisterRoutes(protectedRoutes)
	container.UserHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine, container *container.Container) {
	router.GET("/health", middleware.HealthCheckHandler(container.Repository.Ping))
}
