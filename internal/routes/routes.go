package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/reidocupim/internal/config"
	"github.com/example/reidocupim/internal/handlers"
	"github.com/example/reidocupim/internal/middleware"
	"github.com/example/reidocupim/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	clock := services.SystemClock()
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)

	customerService := services.NewCustomerService(db, clock)
	accrualService := services.NewAccrualService(db, clock)
	decayService := services.NewDecayService(db, clock)
	redemptionService := services.NewRedemptionService(db, clock, telegramService)
	wheelService := services.NewWheelService(db, telegramService)

	customerHandler := handlers.NewCustomerHandler(customerService)
	webhookHandler := handlers.NewWebhookHandler(accrualService)
	cronHandler := handlers.NewCronHandler(decayService)
	redemptionHandler := handlers.NewRedemptionHandler(redemptionService)
	wheelHandler := handlers.NewWheelHandler(wheelService)
	catalogHandler := handlers.NewCatalogHandler(db)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	api := app.Group("/api")

	// Customer-facing routes
	customers := api.Group("/customers")
	customers.Post("/", customerHandler.Signup)
	customers.Get("/lookup", customerHandler.Lookup)
	customers.Post("/reset-pin", customerHandler.ResetPIN)

	api.Post("/redemptions", redemptionHandler.Redeem)
	api.Post("/coupons/validate", redemptionHandler.Validate)
	api.Post("/wheel/spin", wheelHandler.Spin)
	api.Get("/rewards", catalogHandler.ListRewards)

	// POS webhook, shared-secret header
	api.Post("/webhooks/pos", middleware.POSAuthMiddleware(cfg.POSWebhookToken), webhookHandler.Purchase)

	// Scheduled jobs, triggered by an external cron
	api.Get("/cron/expire-points", middleware.CronAuthMiddleware(cfg.CronSecret), cronHandler.ExpirePoints)

	// Admin routes
	api.Post("/admin/login", adminHandler.Login)

	admin := api.Group("/admin", middleware.AuthMiddleware(cfg))
	admin.Post("/rewards", catalogHandler.CreateReward)
	admin.Put("/rewards/:id", catalogHandler.UpdateReward)
	admin.Delete("/rewards/:id", catalogHandler.DeleteReward)

	admin.Get("/wheel-prizes", catalogHandler.ListWheelPrizes)
	admin.Post("/wheel-prizes", catalogHandler.CreateWheelPrize)
	admin.Put("/wheel-prizes/:id", catalogHandler.UpdateWheelPrize)
	admin.Delete("/wheel-prizes/:id", catalogHandler.DeleteWheelPrize)

	admin.Get("/redemptions", catalogHandler.ListRedemptions)
}
