package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/RelojeriaCentral/taller-api/internal/config"
	"github.com/RelojeriaCentral/taller-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		zap.S().Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.PasswordResetToken{},
		&models.Client{},
		&models.Employee{},
		&models.Watch{},
		&models.Battery{},
		&models.BatterySale{},
		&models.RepairOrder{},
		&models.Income{},
		&models.Expense{},
		&models.AuditLog{},
	); err != nil {
		zap.S().Fatalf("failed to migrate: %v", err)
	}

	return db
}
