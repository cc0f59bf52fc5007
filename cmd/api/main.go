package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-backoffice-ws/internal/config"
	"go-backoffice-ws/internal/handler"
	"go-backoffice-ws/internal/middleware"
	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/internal/service"
	"go-backoffice-ws/internal/ws"
	"go-backoffice-ws/pkg/database"
	"go-backoffice-ws/pkg/jwt"
	"go-backoffice-ws/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env (.env is optional; deployments inject env vars directly)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	jwt.Configure(cfg.JWTSecret)

	// 2. Setup Database
	db := database.ConnectDB(cfg.DatabaseDSN)
	// Auto Migrate (use a dedicated migration tool in production)
	if err := db.AutoMigrate(
		&model.User{},
		&model.Branch{},
		&model.UserBranch{},
		&model.PagePermission{},
		&model.CrudPermission{},
		&model.PaymentTerm{},
		&model.Supplier{},
		&model.PurchaseOrder{},
		&model.CashRequest{},
		&model.BulkPayment{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	// 3. Seed default permission matrices
	permissionRepo := repository.NewPermissionRepo(db)
	if err := permissionRepo.SeedDefaults(); err != nil {
		log.Warn().Err(err).Msg("failed to seed default permissions")
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	branchRepo := repository.NewBranchRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	termRepo := repository.NewPaymentTermRepo(db)
	poRepo := repository.NewPurchaseOrderRepo(db)
	cashRepo := repository.NewCashRequestRepo(db)
	bulkRepo := repository.NewBulkPaymentRepo(db)
	auditRepo := repository.NewAuditLogRepo(db)

	auditService := service.NewAuditService(auditRepo, wsHub)
	permissionService := service.NewPermissionService(permissionRepo)
	branchService := service.NewBranchService(branchRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, auditService)
	lockService := service.NewLockService(poRepo, cashRepo, wsHub)
	orderService := service.NewPurchaseOrderService(poRepo, supplierRepo, auditService)
	cashService := service.NewCashRequestService(cashRepo, auditService)
	paymentStore := repository.NewPaymentStore(db)
	paymentService := service.NewPaymentService(paymentStore, poRepo, bulkRepo, auditService)
	exportService := service.NewExportService(permissionService, orderService)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	permissionHandler := handler.NewPermissionHandler(permissionService)
	branchHandler := handler.NewBranchHandler(branchService)
	supplierHandler := handler.NewSupplierHandler(supplierRepo)
	termHandler := handler.NewPaymentTermHandler(termRepo)
	orderHandler := handler.NewPurchaseOrderHandler(orderService, branchService, exportService)
	lockHandler := handler.NewLockHandler(lockService)
	cashHandler := handler.NewCashRequestHandler(cashService, branchService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	auditHandler := handler.NewAuditHandler(auditService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Back Office WS v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// User Management (admin tier only)
	adminTier := middleware.RequireRoles(model.RoleSuperAdmin, model.RoleAdmin)
	protected.Get("/users", adminTier, userHandler.GetAllUsers)
	protected.Get("/users/:id", adminTier, userHandler.GetUserByID)
	protected.Post("/users", adminTier, middleware.RequireAction(permissionService, model.PageUsers, model.ActionCreate), userHandler.CreateUser)
	protected.Put("/users/:id", adminTier, middleware.RequireAction(permissionService, model.PageUsers, model.ActionUpdate), userHandler.UpdateUser)
	protected.Delete("/users/:id", adminTier, middleware.RequireAction(permissionService, model.PageUsers, model.ActionDelete), userHandler.DeactivateUser)
	protected.Put("/users/:id/branches", adminTier, middleware.RequireAction(permissionService, model.PageUsers, model.ActionUpdate), userHandler.SetBranchAssignments)

	// Permissions (super admin only)
	superOnly := middleware.RequireRoles(model.RoleSuperAdmin)
	protected.Get("/permissions/pages", superOnly, permissionHandler.ListPagePermissions)
	protected.Get("/permissions/crud", superOnly, permissionHandler.ListCrudPermissions)
	protected.Put("/permissions/pages", superOnly, permissionHandler.SetPagePermission)
	protected.Put("/permissions/crud", superOnly, permissionHandler.SetCrudPermission)
	protected.Get("/permissions/visible-columns", permissionHandler.MyVisibleColumns)

	// Branches
	protected.Get("/branches", middleware.RequirePage(permissionService, model.PageBranches), branchHandler.ListBranches)
	protected.Get("/branches/mine", branchHandler.MyBranches)
	protected.Post("/branches", middleware.RequireAction(permissionService, model.PageBranches, model.ActionCreate), branchHandler.CreateBranch)
	protected.Put("/branches/:code", middleware.RequireAction(permissionService, model.PageBranches, model.ActionUpdate), branchHandler.UpdateBranch)

	// Suppliers
	protected.Get("/suppliers", middleware.RequirePage(permissionService, model.PageSuppliers), supplierHandler.ListSuppliers)
	protected.Get("/suppliers/:id", middleware.RequirePage(permissionService, model.PageSuppliers), supplierHandler.GetSupplier)
	protected.Post("/suppliers", middleware.RequireAction(permissionService, model.PageSuppliers, model.ActionCreate), supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", middleware.RequireAction(permissionService, model.PageSuppliers, model.ActionUpdate), supplierHandler.UpdateSupplier)

	// Payment Terms
	protected.Get("/payment-terms", middleware.RequirePage(permissionService, model.PagePaymentTerms), termHandler.ListPaymentTerms)
	protected.Post("/payment-terms", middleware.RequireAction(permissionService, model.PagePaymentTerms, model.ActionCreate), termHandler.CreatePaymentTerm)
	protected.Put("/payment-terms/:id", middleware.RequireAction(permissionService, model.PagePaymentTerms, model.ActionUpdate), termHandler.UpdatePaymentTerm)
	protected.Post("/payment-terms/:id/preview", middleware.RequirePage(permissionService, model.PagePaymentTerms), termHandler.PreviewDueDate)

	// Purchase Orders
	poPage := model.PagePurchaseOrders
	protected.Get("/purchase-orders", middleware.RequirePage(permissionService, poPage), orderHandler.ListOrders)
	protected.Get("/purchase-orders/export", middleware.RequirePage(permissionService, poPage), orderHandler.ExportCSV)
	protected.Get("/purchase-orders/:id", middleware.RequirePage(permissionService, poPage), orderHandler.GetOrder)
	protected.Post("/purchase-orders", middleware.RequireAction(permissionService, poPage, model.ActionCreate), orderHandler.CreateOrder)
	protected.Put("/purchase-orders/:id", middleware.RequireAction(permissionService, poPage, model.ActionUpdate), orderHandler.UpdateOrder)
	protected.Delete("/purchase-orders/:id", middleware.RequireAction(permissionService, poPage, model.ActionDelete), orderHandler.DeleteOrder)

	// Cash Requests
	crPage := model.PageCashRequests
	protected.Get("/cash-requests", middleware.RequirePage(permissionService, crPage), cashHandler.ListRequests)
	protected.Get("/cash-requests/:id", middleware.RequirePage(permissionService, crPage), cashHandler.GetRequest)
	protected.Post("/cash-requests", middleware.RequireAction(permissionService, crPage, model.ActionCreate), cashHandler.CreateRequest)
	protected.Put("/cash-requests/:id/status", middleware.RequireAction(permissionService, crPage, model.ActionUpdate), cashHandler.UpdateStatus)
	protected.Delete("/cash-requests/:id", middleware.RequireAction(permissionService, crPage, model.ActionDelete), cashHandler.DeleteRequest)

	// Row Locks
	protected.Get("/locks/:entity/:id", lockHandler.Check)
	protected.Post("/locks/:entity/:id", lockHandler.Acquire)
	protected.Delete("/locks/:entity/:id", lockHandler.Release)
	protected.Delete("/locks/:entity/:id/force", lockHandler.ForceRelease)

	// Bulk Payments (finance and admin tier)
	payRoles := middleware.RequireRoles(model.RoleSuperAdmin, model.RoleAdmin, model.RoleFinance)
	protected.Get("/payments/bulk", payRoles, paymentHandler.ListBulkPayments)
	protected.Get("/payments/bulk/:reference", payRoles, paymentHandler.GetBulkPayment)
	protected.Post("/payments/bulk", payRoles, paymentHandler.ExecuteBulk)
	protected.Delete("/payments/bulk/:reference", payRoles, paymentHandler.RollbackBulk)
	protected.Post("/payments/orders/:id", payRoles, paymentHandler.PaySingle)

	// Audit Logs
	protected.Get("/audit-logs", middleware.RequirePage(permissionService, model.PageAuditLogs), auditHandler.ListEntries)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
