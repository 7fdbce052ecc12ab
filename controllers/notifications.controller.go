package controllers

import (
	"github.com/gofiber/fiber/v2"

	"farmlink/initializers"
	"farmlink/models"
)

// GetNotifications returns the recipient's notifications newest first and
// bulk-marks everything read, matching the notification list view.
func GetNotifications(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var notifications []models.Notification
	err := initializers.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load notifications",
		})
	}

	err = initializers.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to mark notifications read",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   notifications,
	})
}
