package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"kopdes-pos/internal/handler"
	"kopdes-pos/internal/middleware"
	"kopdes-pos/internal/model"
	"kopdes-pos/internal/readmodel"
	"kopdes-pos/internal/repository"
	"kopdes-pos/internal/service"
	"kopdes-pos/internal/ws"
	"kopdes-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Product{}, &model.Member{}, &model.Transaction{}, &model.StockLog{})

	// 3. WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// 4. Repositories
	productRepo := repository.NewProductRepo(db)
	memberRepo := repository.NewMemberRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)
	stockLogRepo := repository.NewStockLogRepo(db)

	// 5. Read model: bulk load everything before serving a single request
	cache := readmodel.New(productRepo, memberRepo, transactionRepo, stockLogRepo)
	if err := cache.Load(); err != nil {
		log.Fatal("Failed to load read model: ", err)
	}
	log.Println("Read model loaded")

	// 6. Services & handlers
	ledgerService := service.NewLedgerService(productRepo, stockLogRepo, cache, db, hub)
	salesService := service.NewSalesService(productRepo, transactionRepo, stockLogRepo, cache, db, hub)
	catalogService := service.NewCatalogService(productRepo, memberRepo, cache, hub)
	reportService := service.NewReportService(cache)

	sessionHandler := handler.NewSessionHandler()
	catalogHandler := handler.NewCatalogHandler(catalogService)
	salesHandler := handler.NewSalesHandler(salesService)
	stockHandler := handler.NewStockHandler(ledgerService, cache)
	reportHandler := handler.NewReportHandler(reportService, cache)

	// 7. Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Kopdes POS v1.0",
	})
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 8. Routes. Every route runs under the simulated-role resolver; menu
	// checks mirror the sidebar visibility and are not a security boundary.
	api := app.Group("/api/v1", middleware.WithRole())

	// Session (role toggle)
	api.Post("/session/role", sessionHandler.SetRole)
	api.Get("/session/menus", sessionHandler.Menus)

	// Catalog: reads are open (POS needs them); edits live on the stock menu
	api.Get("/products", catalogHandler.GetProducts)
	api.Post("/products", middleware.RequireMenu(model.MenuStock), catalogHandler.CreateProduct)
	api.Put("/products/:id", middleware.RequireMenu(model.MenuStock), catalogHandler.UpdateProduct)
	api.Delete("/products/:id", middleware.RequireMenu(model.MenuStock), catalogHandler.DeleteProduct)

	// Stock ledger operations
	api.Post("/products/:id/receive", middleware.RequireMenu(model.MenuStock), stockHandler.ReceiveStock)
	api.Post("/products/:id/adjust", middleware.RequireMenu(model.MenuStock), stockHandler.AdjustStock)
	api.Get("/stock-logs", middleware.RequireMenu(model.MenuStock), stockHandler.GetStockLogs)

	// Sales
	api.Post("/transactions", middleware.RequireMenu(model.MenuPOS), salesHandler.RecordSale)
	api.Get("/transactions", middleware.RequireMenu(model.MenuReports), salesHandler.GetTransactions)
	api.Get("/transactions/:id", middleware.RequireMenu(model.MenuReports), salesHandler.GetTransaction)
	api.Get("/transactions/:id/receipt", middleware.RequireMenu(model.MenuPOS), salesHandler.GetReceipt)
	api.Delete("/transactions/:id", middleware.RequireRole(model.RoleAdmin), salesHandler.ReverseSale)

	// Members
	api.Get("/members", catalogHandler.GetMembers)
	api.Post("/members", middleware.RequireMenu(model.MenuReports), catalogHandler.AddMember)
	api.Delete("/members/:id", middleware.RequireRole(model.RoleAdmin), catalogHandler.DeleteMember)

	// Dashboard views
	dashboard := api.Group("/dashboard", middleware.RequireMenu(model.MenuDashboard))
	dashboard.Get("/stats", reportHandler.Dashboard)
	dashboard.Get("/top-products", reportHandler.TopProducts)
	dashboard.Get("/weekly-sales", reportHandler.WeeklySales)
	dashboard.Get("/critical-stock", reportHandler.CriticalStock)

	// Reports & exports
	reports := api.Group("/reports", middleware.RequireMenu(model.MenuReports))
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/summary/slip", reportHandler.SummarySlip)
	reports.Get("/members", reportHandler.MemberRanking)
	reports.Get("/exports/transactions.csv", reportHandler.ExportTransactionsCSV)
	reports.Get("/exports/products.csv", reportHandler.ExportProductsCSV)
	reports.Get("/exports/stock-logs.csv", reportHandler.ExportStockLogsCSV)
	reports.Get("/exports/members.csv", reportHandler.ExportMemberReportCSV)

	// WebSocket (stock update broadcast)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			// keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
