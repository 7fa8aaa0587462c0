package handlers

import (
	"renthub/internal/app"

	"github.com/gofiber/fiber/v2"
)

func Router(router fiber.Router, app *app.App) error {
	router.Use(app.Middleware.TraceID())

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewUserHandler(*app, api).Register()
	NewBuildingHandler(*app, api).Register()
	NewContractHandler(*app, api).Register()
	NewPaymentHandler(*app, api).Register()
	NewLaundryHandler(*app, api).Register()
	NewChangeRequestHandler(*app, api).Register()

	return nil
}
