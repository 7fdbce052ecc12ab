package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/services"
)

// AddToCart puts a product into the session cart, guarding against a
// farmer buying from themselves.
func AddToCart(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	productID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	var product models.Product
	if err := initializers.DB.First(&product, "id = ?", productID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	if product.UserID == user.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "You cannot add your own product to the cart",
		})
	}

	qty, _ := strconv.Atoi(c.Query("qty", "1"))
	if err := services.AddToCart(user.ID, productID, qty); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update cart",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": product.Name + " added to your cart",
	})
}

// ViewCart prices the cart: line totals, delivery fee and grand total.
func ViewCart(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	selection, err := services.GetCart(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load cart",
		})
	}

	type cartItem struct {
		Product  models.Product  `json:"product"`
		Quantity int             `json:"quantity"`
		Subtotal decimal.Decimal `json:"subtotal"`
	}

	items := []cartItem{}
	subtotal := decimal.Zero
	for pid, qty := range selection {
		var product models.Product
		if err := initializers.DB.First(&product, "id = ?", pid).Error; err != nil {
			// drop products that vanished since they were added
			continue
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, cartItem{Product: product, Quantity: qty, Subtotal: lineTotal})
	}

	delivery := services.DeliveryFee(subtotal)

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"items":       items,
			"subtotal":    subtotal,
			"delivery":    delivery,
			"grand_total": subtotal.Add(delivery),
		},
	})
}

func UpdateCartQuantity(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	productID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	qty, err := strconv.Atoi(c.Query("qty", "1"))
	if err != nil {
		qty = 1
	}

	if err := services.SetCartQuantity(user.ID, productID, qty); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update cart",
		})
	}

	return c.JSON(fiber.Map{"status": "success"})
}

func RemoveFromCart(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	productID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	if err := services.RemoveFromCart(user.ID, productID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update cart",
		})
	}

	return c.JSON(fiber.Map{"status": "success"})
}

// BuyNow stages a single-product checkout without touching the cart.
func BuyNow(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	productID, err := uuid.FromString(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	var product models.Product
	if err := initializers.DB.First(&product, "id = ?", productID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	if product.UserID == user.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "You cannot buy your own product",
		})
	}

	qty, err := strconv.Atoi(c.Query("qty", "1"))
	if err != nil {
		qty = 1
	}

	if err := services.SetBuyNow(user.ID, productID, qty); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to stage buy-now selection",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"product":  product,
			"quantity": qty,
		},
	})
}
