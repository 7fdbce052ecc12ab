package services

import (
	"fmt"
	"strings"
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"farmlink/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared in-memory database keeps all pooled connections on
	// the same schema while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.StockAlert{},
		&models.Order{},
		&models.OrderItem{},
		&models.FarmerOrder{},
		&models.FarmerPayment{},
		&models.Notification{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.NewV4(),
		Name:     role + " user",
		Email:    uuid.NewV4().String() + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, farmer models.User, name string, price string, stock int) models.Product {
	t.Helper()

	product := models.Product{
		ID:     uuid.NewV4(),
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Unit:   "kg",
		Stock:  stock,
		UserID: farmer.ID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func createAddress(t *testing.T, db *gorm.DB, user models.User) models.Address {
	t.Helper()

	address := models.Address{
		ID:          uuid.NewV4(),
		UserID:      user.ID,
		FullName:    user.Name,
		Phone:       "9999999999",
		AddressLine: "12 Market Road",
		City:        "Pune",
		State:       "MH",
		Pincode:     "411001",
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func asResponse(user models.User) models.UserResponse {
	return models.FilterUserRecord(&user)
}

func countNotifications(t *testing.T, db *gorm.DB, userID uuid.UUID, event models.NotificationEvent) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND event = ?", userID, event).Count(&n).Error)
	return n
}
