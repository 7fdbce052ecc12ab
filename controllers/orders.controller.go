package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/services"
	"farmlink/utils"
)

// respondServiceError maps the pipeline's error taxonomy onto HTTP
// rejections. The wrapped message is what the user sees.
func respondServiceError(c *fiber.Ctx, err error) error {
	message := err.Error()
	if i := strings.Index(message, ": "); i >= 0 {
		message = message[i+2:]
	}

	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error", "message": message,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status": "error", "message": message,
		})
	case errors.Is(err, services.ErrStateConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status": "error", "message": message,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error", "message": "Something went wrong",
		})
	}
}

// PlaceOrder runs the checkout: resolves the selection (cart unless a
// buy-now pick is staged), splits it into per-farmer records and answers
// with a redirect target that depends on the payment method.
func PlaceOrder(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload models.PlaceOrderInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if errs := models.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Please select a delivery address and a valid payment method",
			"errors":  errs,
		})
	}

	var address models.Address
	err := initializers.DB.First(&address, "id = ? AND user_id = ?", payload.AddressID, user.ID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Please select a delivery address",
		})
	}

	// Cart wins; buy-now only fills in when the cart is empty.
	usedBuyNow := false
	selection, err := services.GetCart(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if len(selection) == 0 || payload.BuyNow {
		buyNow, err := services.GetBuyNow(user.ID)
		if err != nil && err != redis.Nil {
			return respondServiceError(c, err)
		}
		if len(buyNow) > 0 {
			selection = buyNow
			usedBuyNow = true
		}
	}

	order, err := services.PlaceOrder(initializers.DB, user, address, payload.PaymentMethod, selection)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Only cash-on-delivery completes here; other methods keep the
	// selection until the payment step confirms.
	redirect := "/ordersuccess/" + order.ID.String()
	switch payload.PaymentMethod {
	case "cod":
		if usedBuyNow {
			services.ClearBuyNow(user.ID)
		} else {
			services.ClearCart(user.ID)
		}
	case "upi":
		redirect = "/upi-payment/"
	case "card":
		redirect = "/card-payment/"
	case "netbanking":
		redirect = "/netbanking-payment/"
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":   "success",
		"message":  "Order placed successfully",
		"order_id": order.ID,
		"redirect": redirect,
	})
}

func GetMyOrders(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var orders []models.Order
	query := initializers.DB.Where("user_id = ?", user.ID).
		Preload("OrderItems").Preload("OrderItems.Product").
		Order("created_at DESC")
	return utils.Paginate(c, query, &orders)
}

func GetOrderDetail(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var order models.Order
	err := initializers.DB.Preload("OrderItems").Preload("OrderItems.Product").
		First(&order, "id = ? AND user_id = ?", c.Params("id"), user.ID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Order not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   order,
	})
}

func CancelOrder(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	order, err := services.CancelOrder(initializers.DB, user, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Order has been cancelled",
		"data":    order,
	})
}
