package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/utils"
)

// DeserializeUser resolves the JWT (cookie or Authorization header) into
// a models.UserResponse under c.Locals("user").
func DeserializeUser(c *fiber.Ctx) error {
	var tokenString string
	authorization := c.Get("Authorization")

	if strings.HasPrefix(authorization, "Bearer ") {
		tokenString = strings.TrimPrefix(authorization, "Bearer ")
	} else if c.Cookies("token") != "" {
		tokenString = c.Cookies("token")
	}

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "You are not logged in",
		})
	}

	config, _ := initializers.LoadConfig(".")

	sub, err := utils.ValidateToken(tokenString, config.JwtSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid or expired token",
		})
	}

	var user models.User
	if err := initializers.DB.First(&user, "id = ?", fmt.Sprint(sub)).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "The user belonging to this token no longer exists",
		})
	}

	c.Locals("user", models.FilterUserRecord(&user))
	return c.Next()
}

// RequireFarmer gates farmer-only endpoints.
func RequireFarmer(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)
	if !user.IsFarmer() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "Only farmers can access this resource",
		})
	}
	return c.Next()
}
