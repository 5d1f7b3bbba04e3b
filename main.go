package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/valentynslivko/chift-odoo-test-assignment/internal/config"
	"github.com/valentynslivko/chift-odoo-test-assignment/internal/database"
	"github.com/valentynslivko/chift-odoo-test-assignment/internal/odoo"
	"github.com/valentynslivko/chift-odoo-test-assignment/internal/repository"
	"github.com/valentynslivko/chift-odoo-test-assignment/internal/service"
	"github.com/valentynslivko/chift-odoo-test-assignment/internal/sync"
	transport "github.com/valentynslivko/chift-odoo-test-assignment/internal/transport/http"
)

var startTime time.Time

func main() {
	startTime = time.Now()
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ [DB] %v", err)
	}

	contactRepo := repository.NewContactRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Every pipeline run and every /api/utils request gets its own
	// authenticated Odoo session.
	newOdooClient := func() (*odoo.Client, error) {
		return odoo.NewClient(cfg)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTokenExpireMinutes)
	odooService := service.NewOdooService(newOdooClient, contactRepo, invoiceRepo)
	syncService := sync.NewSyncService(db, func() (sync.Fetcher, error) {
		return newOdooClient()
	}, cfg.SyncFetchLimit)

	handler := transport.NewHandler(authService, odooService, contactRepo, invoiceRepo)
	log.Println("✅ [SERVICE] Services & Handler initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := sync.NewScheduler(
		time.Duration(cfg.SyncIntervalSeconds)*time.Second,
		sync.Job{Name: "sync_odoo_contacts", Run: syncService.SyncContacts},
		sync.Job{Name: "sync_odoo_invoices", Run: syncService.SyncInvoices},
	)
	go scheduler.Start(ctx)
	log.Printf("🔄 [SYNC] Scheduler started (interval: %ds, fetch limit: %d)",
		cfg.SyncIntervalSeconds, cfg.SyncFetchLimit)

	app := fiber.New(fiber.Config{
		AppName:      "chift-odoo-test-assignment",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))

	// 1. Auth routes
	authRoutes := app.Group("/api/auth")
	authRoutes.Post("/register", handler.Register)
	authRoutes.Post("/login", handler.Login)
	authRoutes.Get("/me", handler.AuthRequired(), handler.Me)
	log.Println("✅ [ROUTES] Registered auth routes: /api/auth/*")

	// 2. Synced data routes
	contactRoutes := app.Group("/api/contacts", handler.AuthRequired())
	contactRoutes.Get("", handler.GetContacts)
	contactRoutes.Get("/:id", handler.GetContact)

	invoiceRoutes := app.Group("/api/invoices", handler.AuthRequired())
	invoiceRoutes.Get("", handler.GetInvoices)
	invoiceRoutes.Get("/:id", handler.GetInvoice)
	log.Println("✅ [ROUTES] Registered data routes: /api/contacts, /api/invoices")

	// 3. Odoo utils routes (testing/admin surface, hit Odoo directly)
	odooRoutes := app.Group("/api/odoo", handler.AuthRequired())
	odooRoutes.Get("/version", handler.GetOdooVersion)

	utilsRoutes := app.Group("/api/utils", handler.AuthRequired())
	utilsRoutes.Get("/odoo-contacts", handler.GetOdooContacts)
	utilsRoutes.Post("/odoo-create-contact", handler.CreateOdooContact)
	utilsRoutes.Get("/odoo-invoices", handler.GetOdooInvoices)
	utilsRoutes.Post("/odoo-create-invoice", handler.CreateOdooInvoice)
	utilsRoutes.Get("/odoo-partners-list", handler.GetOdooPartners)
	log.Println("✅ [ROUTES] Registered odoo utils routes: /api/odoo/*, /api/utils/*")

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		uptime := time.Since(startTime).Round(time.Second)
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "chift-odoo-test-assignment",
			"uptime":    uptime.String(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	log.Println("✅ [ROUTES] Registered /health")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 [SHUTDOWN] Graceful shutdown initiated...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ [SHUTDOWN] Error: %v", err)
		}
	}()

	log.Printf("🚀 chift-odoo-test-assignment starting...")
	log.Printf("   🔗 Listening on port: %s", cfg.ServerPort)
	log.Printf("   🌐 Odoo host: %s", cfg.OdooHost)
	log.Println("✅ Server ready.")

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ [STARTUP] Server failed to start: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var errMsg string
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		errMsg = e.Message
	} else {
		errMsg = err.Error()
	}
	log.Printf("🔥 [ERROR] [%d] %s %s → %v | IP=%s",
		code,
		c.Method(),
		c.Path(),
		errMsg,
		c.IP(),
	)
	return c.Status(code).JSON(fiber.Map{
		"error": "something went wrong",
	})
}
