package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/services"
	"farmlink/utils"
)

func FarmerDashboard(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	db := initializers.DB

	var totalProducts, totalOrders, pendingOrders, deliveredOrders, unreadNotifications int64
	db.Model(&models.Product{}).Where("user_id = ?", user.ID).Count(&totalProducts)
	db.Model(&models.FarmerOrder{}).Where("farmer_id = ?", user.ID).Count(&totalOrders)
	db.Model(&models.FarmerOrder{}).Where("farmer_id = ? AND status = ?", user.ID, models.StatusPending).Count(&pendingOrders)
	db.Model(&models.FarmerOrder{}).Where("farmer_id = ? AND status = ?", user.ID, models.StatusDelivered).Count(&deliveredOrders)
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", user.ID, false).Count(&unreadNotifications)

	var totalEarnings decimal.Decimal
	db.Model(&models.FarmerPayment{}).
		Where("farmer_id = ? AND status = ?", user.ID, models.PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalEarnings)

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"total_products":   totalProducts,
			"total_orders":     totalOrders,
			"pending_orders":   pendingOrders,
			"delivered_orders": deliveredOrders,
			"total_earnings":   totalEarnings,
			"notifications":    unreadNotifications,
		},
	})
}

func GetFarmerOrders(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var farmerOrders []models.FarmerOrder
	query := initializers.DB.Where("farmer_id = ?", user.ID).
		Preload("OrderItem").Preload("OrderItem.Product").
		Order("created_at DESC")
	return utils.Paginate(c, query, &farmerOrders)
}

func UpdateFarmerOrderStatus(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload models.UpdateFarmerOrderInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	farmerOrder, err := services.UpdateFarmerOrderStatus(
		initializers.DB, user, c.Params("id"), models.OrderStatus(payload.Status))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Order status updated successfully",
		"data":    farmerOrder,
	})
}

func GetFarmerPayments(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payments []models.FarmerPayment
	query := initializers.DB.Where("farmer_id = ?", user.ID).
		Preload("OrderItem").Preload("OrderItem.Product").
		Order("created_at DESC")
	return utils.Paginate(c, query, &payments)
}

// GetStockAlerts lists the farmer's alerts that are still waiting to be
// acknowledged.
func GetStockAlerts(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var alerts []models.StockAlert
	err := initializers.DB.Where("user_id = ? AND is_alerted = ?", user.ID, false).
		Preload("Product").Find(&alerts).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load stock alerts",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   alerts,
	})
}

func AcknowledgeStockAlert(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	result := initializers.DB.Model(&models.StockAlert{}).
		Where("id = ? AND user_id = ?", c.Params("id"), user.ID).
		Update("is_alerted", true)
	if result.Error != nil || result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Stock alert not found",
		})
	}

	return c.JSON(fiber.Map{"status": "success"})
}
