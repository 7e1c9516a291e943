package routes

import (
	"github.com/BekaChkhiro/dealer-app-sub000/internal/core/container"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/middleware"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/security"

	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(router *gin.Engine, app *container.Container) {
	app.LoginHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, app *container.Container) {
	protected := router.Group("")
	protected.Use(security.JWTMiddleware())

	app.UserHandler.RegisterRoutes(protected)
	app.VehicleHandler.RegisterRoutes(protected)
	app.TransactionHandler.RegisterRoutes(protected)
	app.BookingHandler.RegisterRoutes(protected)
	app.ContainerHandler.RegisterRoutes(protected)
	app.BoatHandler.RegisterRoutes(protected)
	app.TicketHandler.RegisterRoutes(protected)
	app.CalculatorHandler.RegisterRoutes(protected)
	app.AuditLogHandler.RegisterRoutes(protected)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
