// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"edcall/internal/handlers"
	"edcall/internal/middleware"
	"edcall/internal/models"
	"edcall/internal/repositories"
	"edcall/internal/services/auth"
	"edcall/internal/services/entitlement"
	"edcall/internal/services/feed"
	"edcall/internal/services/ledger"
	"edcall/internal/services/match"
	"edcall/internal/services/messaging"
	"edcall/internal/services/registry"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes. It wires repositories
// into services, services into handlers, and returns the call scheduler
// so main can stop it on shutdown.
func SetupRoutes(app *fiber.App, db *gorm.DB) *entitlement.Scheduler {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	txRepo := repositories.NewTransactionRepository(db)
	callRepo := repositories.NewCallSessionRepository(db)
	postRepo := repositories.NewPostRepository(db)
	msgRepo := repositories.NewMessageRepository(db)

	// Initialize services in dependency order
	authService := auth.NewService(userRepo)
	matchService := match.NewService()
	ledgerService := ledger.NewService(userRepo, txRepo, nil)
	entitlementService := entitlement.NewService(userRepo, callRepo, ledgerService)
	scheduler := entitlement.NewScheduler(entitlementService, entitlement.DefaultTickInterval)
	registryService := registry.NewService(userRepo, txRepo, entitlementService)
	feedService := feed.NewService(postRepo, ledgerService)
	messagingService := messaging.NewService(userRepo, msgRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	discoveryHandler := handlers.NewDiscoveryHandler(matchService, userRepo)
	callHandler := handlers.NewCallHandler(entitlementService, scheduler, ledgerService, callRepo)
	paymentHandler := handlers.NewPaymentHandler(registryService, ledgerService)
	adminHandler := handlers.NewAdminHandler(registryService, userRepo, txRepo)
	feedHandler := handlers.NewFeedHandler(feedService, authService)
	messageHandler := handlers.NewMessageHandler(messagingService)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/health", handlers.HealthCheck)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the EdCall API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	// Protected routes with auth middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	setupUserRoutes(protected, authHandler, discoveryHandler, callHandler, paymentHandler)
	setupFeedRoutes(protected, feedHandler)
	setupMessageRoutes(protected, messageHandler)
	setupAdminRoutes(app, authMiddleware, adminHandler, feedHandler)

	return scheduler
}

func setupUserRoutes(router fiber.Router, authHandler *handlers.AuthHandler, discoveryHandler *handlers.DiscoveryHandler, callHandler *handlers.CallHandler, paymentHandler *handlers.PaymentHandler) {
	// Account routes
	router.Get("/profile", authHandler.GetProfile)
	router.Post("/change-password", middleware.HasPermission(models.PermissionChangePassword), authHandler.ChangePassword)
	router.Post("/logout", authHandler.Logout)

	// Discovery routes
	discovery := router.Group("/discovery", middleware.HasPermission(models.PermissionDiscoveryRead))
	discovery.Get("/", discoveryHandler.GetDiscovery)
	discovery.Get("/score/:id", discoveryHandler.GetScore)

	// Call routes
	calls := router.Group("/calls", middleware.HasPermission(models.PermissionCallWrite))
	calls.Post("/", callHandler.StartCall)
	calls.Get("/", callHandler.GetHistory)
	calls.Get("/:id", callHandler.GetCall)
	calls.Post("/:id/redeem", callHandler.RedeemMinutes)
	calls.Post("/:id/end", callHandler.EndCall)

	// Points and payment routes
	router.Get("/points", middleware.HasPermission(models.PermissionPointsRead), paymentHandler.GetBalance)
	router.Post("/points/earn", middleware.HasPermission(models.PermissionPointsWrite), paymentHandler.EarnPoints)
	router.Get("/transactions", middleware.HasPermission(models.PermissionTransactionRead), paymentHandler.GetHistory)
	router.Post("/payment", middleware.HasPermission(models.PermissionTransactionWrite), paymentHandler.InitiatePayment)
}

func setupFeedRoutes(router fiber.Router, feedHandler *handlers.FeedHandler) {
	posts := router.Group("/feed", middleware.HasPermission(models.PermissionFeedRead))
	posts.Get("/", feedHandler.GetFeed)
	posts.Get("/statuses", feedHandler.GetStatuses)
	posts.Post("/posts", middleware.HasPermission(models.PermissionFeedWrite), feedHandler.CreatePost)
	posts.Post("/posts/:id/like", middleware.HasPermission(models.PermissionFeedWrite), feedHandler.LikePost)
	posts.Get("/posts/:id/comments", feedHandler.GetComments)
	posts.Post("/posts/:id/comments", middleware.HasPermission(models.PermissionFeedWrite), feedHandler.AddComment)
	posts.Delete("/posts/:id", middleware.HasPermission(models.PermissionFeedWrite), feedHandler.DeletePost)
	posts.Post("/statuses", middleware.HasPermission(models.PermissionFeedWrite), feedHandler.AddStatus)
}

func setupMessageRoutes(router fiber.Router, messageHandler *handlers.MessageHandler) {
	messages := router.Group("/messages", middleware.HasPermission(models.PermissionMessageRead))
	messages.Get("/", messageHandler.GetInbox)
	messages.Post("/", middleware.HasPermission(models.PermissionMessageWrite), messageHandler.SendMessage)
	messages.Get("/support", messageHandler.GetSupportConversation)
	messages.Post("/support", middleware.HasPermission(models.PermissionMessageWrite), messageHandler.SendSupportMessage)
	messages.Get("/:id", messageHandler.GetConversation)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware, adminHandler *handlers.AdminHandler, feedHandler *handlers.FeedHandler) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	admin.Get("/users", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetUsers)
	admin.Get("/transactions", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetTransactions)

	admin.Post("/transactions/:id/approve", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.ApproveTransaction)
	admin.Post("/transactions/:id/reject", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.RejectTransaction)

	admin.Post("/users/:id/verify", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.VerifyUser)
	admin.Post("/users/:id/block", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.BlockUser)
	admin.Post("/users/:id/refill-trials", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.RefillTrials)
	admin.Delete("/users/:id", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.DeleteUser)

	admin.Post("/posts/:id/feature", middleware.HasPermission(models.PermissionWriteAdmin), feedHandler.FeaturePost)
	admin.Post("/posts/:id/hot", middleware.HasPermission(models.PermissionWriteAdmin), feedHandler.MarkPostHot)
	admin.Delete("/posts/:id", middleware.HasPermission(models.PermissionWriteAdmin), feedHandler.DeletePost)
}
