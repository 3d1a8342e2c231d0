package database

import (
	"log"
	"os"
	"time"

	"go-pos-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	// Credentials come from the .env file so the binary stays portable.
	dsn := os.Getenv("DB_DSN")

	if dsn == "" {
		log.Fatal("❌ Error: DB_DSN not found in .env file. Please configure your database.")
	}

	var err error

	// Wait for the DB to come up (docker-compose starts both at once)
	for i := 0; i < 5; i++ {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatal("Failed to connect to database after 5 attempts:", err)
	}

	log.Println("✅ Successfully connected to MySQL!")

	Migrate(DB)

	log.Println("✅ Database Schema Synced!")
}

// Migrate syncs the schema. Split out of Connect so tests can run it
// against their own gorm handle.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Provider{},
		&models.Product{},
		&models.Client{},
		&models.PaymentMethod{},
		&models.Sale{},
		&models.SaleDetail{},
		&models.CashCount{},
	)
	if err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}
}
