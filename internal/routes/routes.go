package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	"github.com/RelojeriaCentral/taller-api/internal/config"
	"github.com/RelojeriaCentral/taller-api/internal/handlers"
	infraRepo "github.com/RelojeriaCentral/taller-api/internal/infra/repository"
	"github.com/RelojeriaCentral/taller-api/internal/infra/session"
	"github.com/RelojeriaCentral/taller-api/internal/infra/storage"
	"github.com/RelojeriaCentral/taller-api/internal/mailer"
	"github.com/RelojeriaCentral/taller-api/internal/middleware"
	ucAccount "github.com/RelojeriaCentral/taller-api/internal/usecase/account"
	ucBattery "github.com/RelojeriaCentral/taller-api/internal/usecase/battery"
	ucClient "github.com/RelojeriaCentral/taller-api/internal/usecase/client"
	ucEmployee "github.com/RelojeriaCentral/taller-api/internal/usecase/employee"
	ucLedger "github.com/RelojeriaCentral/taller-api/internal/usecase/ledger"
	ucRepair "github.com/RelojeriaCentral/taller-api/internal/usecase/repair"
	ucSale "github.com/RelojeriaCentral/taller-api/internal/usecase/sale"
	ucWatch "github.com/RelojeriaCentral/taller-api/internal/usecase/watch"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	clientRepo := infraRepo.NewClientGormRepository(db)
	employeeRepo := infraRepo.NewEmployeeGormRepository(db)
	watchRepo := infraRepo.NewWatchGormRepository(db)
	batteryRepo := infraRepo.NewBatteryGormRepository(db)
	repairRepo := infraRepo.NewRepairGormRepository(db)
	saleRepo := infraRepo.NewSaleGormRepository(db)
	ledgerRepo := infraRepo.NewLedgerGormRepository(db)
	accountRepo := infraRepo.NewAccountGormRepository(db)

	stagingStore := session.NewRedisStagingStore(cfg)
	objectStore := storage.NewObjectStore(cfg)
	smtpMailer := mailer.New(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	saveClientUC := ucClient.NewSaveClient(clientRepo, auditDispatcher)

	saveEmployeeUC := ucEmployee.NewSaveEmployee(
		employeeRepo,
		auditDispatcher,
		cfg.ShopTimezone,
	)

	saveWatchUC := ucWatch.NewSaveWatch(watchRepo, auditDispatcher)
	saveBatteryUC := ucBattery.NewSaveBattery(batteryRepo, auditDispatcher)

	createRepairUC := ucRepair.NewCreateRepairOrder(
		repairRepo,
		auditDispatcher,
		cfg.ShopTimezone,
	)
	updateRepairUC := ucRepair.NewUpdateRepairOrder(
		repairRepo,
		auditDispatcher,
		cfg.ShopTimezone,
	)
	listRepairUC := ucRepair.NewListRepairOrders(repairRepo)

	recordSaleUC := ucSale.NewRecordBatterySale(
		saleRepo,
		auditDispatcher,
		cfg.ShopTimezone,
	)
	sellWatchUC := ucSale.NewSellWatch(
		saleRepo,
		auditDispatcher,
		cfg.ShopTimezone,
	)

	ledgerUC := ucLedger.New(
		ledgerRepo,
		stagingStore,
		auditDispatcher,
		cfg.ShopTimezone,
	)

	changePasswordUC := ucAccount.NewChangePassword(accountRepo, auditDispatcher)
	passwordResetUC := ucAccount.NewPasswordReset(
		accountRepo,
		smtpMailer,
		auditDispatcher,
		cfg.ResetURL,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	accountHandler := handlers.NewAccountHandler(changePasswordUC, passwordResetUC)

	clientHandler := handlers.NewClientHandler(db, saveClientUC)
	employeeHandler := handlers.NewEmployeeHandler(db, saveEmployeeUC)
	watchHandler := handlers.NewWatchHandler(db, saveWatchUC, sellWatchUC, objectStore)
	batteryHandler := handlers.NewBatteryHandler(db, saveBatteryUC)
	batterySaleHandler := handlers.NewBatterySaleHandler(
		db,
		recordSaleUC,
		ucSale.ParseBatchMode(cfg.SaleBatchMode),
	)
	repairHandler := handlers.NewRepairHandler(db, createRepairUC, updateRepairUC, listRepairUC)
	ledgerHandler := handlers.NewLedgerHandler(ledgerUC, cfg.ShopTimezone)
	reportHandler := handlers.NewReportHandler(ledgerUC, objectStore)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH / RESET (public)
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/reset/request", accountHandler.RequestReset)
		api.POST("/auth/reset/confirm", accountHandler.ConfirmReset)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/me/password", accountHandler.ChangePassword)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)

			secured.GET("/employees", employeeHandler.List)
			secured.POST("/employees", employeeHandler.Create)
			secured.PUT("/employees/:id", employeeHandler.Update)
			secured.PATCH("/employees/:id/status", employeeHandler.ToggleStatus)

			secured.GET("/watches", watchHandler.List)
			secured.POST("/watches", watchHandler.Create)
			secured.PUT("/watches/:id", watchHandler.Update)
			secured.POST("/watches/:id/sell", watchHandler.Sell)
			secured.POST("/watches/:id/photo", watchHandler.UploadPhoto)

			secured.GET("/batteries", batteryHandler.List)
			secured.POST("/batteries", batteryHandler.Create)
			secured.PUT("/batteries/:id", batteryHandler.Update)

			secured.POST("/battery-sales", batterySaleHandler.Record)
			secured.GET("/battery-sales", batterySaleHandler.List)

			secured.GET("/repair-orders", repairHandler.List)
			secured.POST("/repair-orders", repairHandler.Create)
			secured.GET("/repair-orders/:id", repairHandler.Get)
			secured.PUT("/repair-orders/:id", repairHandler.Update)

			// ------------------------------
			// LEDGER (two-step confirm)
			// ------------------------------
			secured.POST("/ledger/:kind/stage", ledgerHandler.Stage)
			secured.POST("/ledger/:kind/confirm", ledgerHandler.Confirm)
			secured.DELETE("/ledger/:kind/stage", ledgerHandler.Discard)
			secured.GET("/ledger/:kind/stage", ledgerHandler.Staged)

			secured.GET("/incomes", ledgerHandler.IncomeRange)
			secured.GET("/incomes/today", ledgerHandler.IncomeTotalToday)
			secured.GET("/expenses", ledgerHandler.ExpenseRange)

			secured.GET("/reports/income", reportHandler.Income)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
