package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/crowncut-ph/crowncut-api/internal/config"
	"github.com/crowncut-ph/crowncut-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.Booking{},
		&models.QueueState{},
		&models.Wallet{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedServices(db)

	return db
}

// seedServices inserts the service menu once; the catalog is static
// reference data.
func seedServices(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	services := []models.Service{
		{Name: "Haircut", DurationMinutes: 30, PricePHP: 200, Description: "Classic haircut"},
		{Name: "Beard Trim", DurationMinutes: 15, PricePHP: 150, Description: "Beard shaping and trimming"},
		{Name: "Hair Wash", DurationMinutes: 10, PricePHP: 100, Description: "Shampoo and conditioning"},
		{Name: "Hair Coloring", DurationMinutes: 60, PricePHP: 500, Description: "Full hair coloring service"},
	}

	if err := db.Create(&services).Error; err != nil {
		log.Printf("failed to seed services: %v", err)
	}
}
