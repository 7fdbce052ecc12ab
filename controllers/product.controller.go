package controllers

import (
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/utils"
)

func CreateProduct(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload models.ProductInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if errs := models.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error",
			"errors": errs,
		})
	}

	if payload.Price.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Price cannot be negative",
		})
	}

	unit := payload.Unit
	if unit == "" {
		unit = "kg"
	}

	product := models.Product{
		ID:       uuid.NewV4(),
		Name:     payload.Name,
		Price:    payload.Price,
		Details:  payload.Details,
		Category: payload.Category,
		Unit:     unit,
		Stock:    payload.Stock,
		UserID:   user.ID,
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   product,
	})
}

// GetProducts lists the catalog with search, category filter and price
// sort, paginated.
func GetProducts(c *fiber.Ctx) error {
	query := initializers.DB.Model(&models.Product{})

	if q := c.Query("q"); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	switch c.Query("sort") {
	case "low":
		query = query.Order("price ASC")
	case "high":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var products []models.Product
	return utils.Paginate(c, query, &products)
}

func GetMyProducts(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var products []models.Product
	query := initializers.DB.Where("user_id = ?", user.ID).Order("created_at DESC")
	return utils.Paginate(c, query, &products)
}

func UpdateProduct(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	productID := c.Params("id")

	var product models.Product
	err := initializers.DB.First(&product, "id = ?", productID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	if product.UserID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "You can only edit your own products",
		})
	}

	var payload models.ProductInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}
	if payload.Price.IsNegative() || payload.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Price and stock cannot be negative",
		})
	}

	product.Name = payload.Name
	product.Price = payload.Price
	product.Details = payload.Details
	product.Category = payload.Category
	if payload.Unit != "" {
		product.Unit = payload.Unit
	}
	product.Stock = payload.Stock

	if err := initializers.DB.Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update product",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   product,
	})
}
