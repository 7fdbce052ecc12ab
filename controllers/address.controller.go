package controllers

import (
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"

	"farmlink/initializers"
	"farmlink/models"
)

func CreateAddress(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload models.AddressInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if errs := models.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "All address fields are required",
			"errors":  errs,
		})
	}

	address := models.Address{
		ID:          uuid.NewV4(),
		UserID:      user.ID,
		FullName:    payload.FullName,
		Phone:       payload.Phone,
		AddressLine: payload.AddressLine,
		City:        payload.City,
		State:       payload.State,
		Pincode:     payload.Pincode,
	}

	if err := initializers.DB.Create(&address).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to save address",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   address,
	})
}

func GetMyAddresses(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var addresses []models.Address
	err := initializers.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&addresses).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load addresses",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   addresses,
	})
}
