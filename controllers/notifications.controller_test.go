package controllers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/services"
)

func setupControllerTest(t *testing.T, user models.UserResponse) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&models.User{}, &models.Notification{}))

	originalDB := initializers.DB
	initializers.SetTestDB(testDB)
	t.Cleanup(func() { initializers.SetTestDB(originalDB) })

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return c.Next()
	})
	return app
}

func TestGetNotificationsBulkMarksRead(t *testing.T) {
	userID := uuid.NewV4()
	app := setupControllerTest(t, models.UserResponse{ID: userID, Role: models.RoleCustomer})
	app.Get("/api/notifications", GetNotifications)

	for i := 0; i < 3; i++ {
		n := models.Notification{
			ID:      uuid.NewV4(),
			UserID:  userID,
			Event:   models.EventOrderPlaced,
			Message: fmt.Sprintf("notice %d", i),
		}
		require.NoError(t, initializers.DB.Create(&n).Error)
	}

	req := httptest.NewRequest("GET", "/api/notifications", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status string                `json:"status"`
		Data   []models.Notification `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.Len(t, body.Data, 3)

	var unread int64
	require.NoError(t, initializers.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&unread).Error)
	assert.Zero(t, unread, "opening the list marks everything read")
}

func TestRespondServiceErrorMapping(t *testing.T) {
	app := fiber.New()
	app.Get("/validation", func(c *fiber.Ctx) error {
		return respondServiceError(c, fmt.Errorf("%w: your cart is empty", services.ErrValidation))
	})
	app.Get("/notfound", func(c *fiber.Ctx) error {
		return respondServiceError(c, fmt.Errorf("%w: order x does not exist", services.ErrNotFound))
	})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return respondServiceError(c, fmt.Errorf("%w: order cannot be cancelled (already Shipped)", services.ErrStateConflict))
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/validation", fiber.StatusBadRequest, "your cart is empty"},
		{"/notfound", fiber.StatusNotFound, "order x does not exist"},
		{"/conflict", fiber.StatusConflict, "order cannot be cancelled (already Shipped)"},
	}

	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, tc.message, body["message"])
	}
}
