package initializers

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"farmlink/models"
)

var DB *gorm.DB

func ConnectDB(config *Config) {
	var err error
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Kolkata",
		config.DBHost, config.DBUserName, config.DBPassword, config.DBName, config.DBPort)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`)

	err = DB.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.StockAlert{},
		&models.Order{},
		&models.OrderItem{},
		&models.FarmerOrder{},
		&models.FarmerPayment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Connected to the database successfully")
}

// SetTestDB swaps the global connection for tests (in-memory SQLite).
func SetTestDB(testDB *gorm.DB) {
	DB = testDB
}
