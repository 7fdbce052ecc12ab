package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"farmlink/controllers"
	"farmlink/middleware"
	"farmlink/models"
	"farmlink/utils"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", controllers.SignUpUser)
	auth.Post("/login", controllers.SignInUser)
	auth.Get("/logout", middleware.DeserializeUser, controllers.LogoutUser)

	products := api.Group("/products")
	products.Get("/", controllers.GetProducts)
	products.Get("/mine", middleware.DeserializeUser, middleware.RequireFarmer, controllers.GetMyProducts)
	products.Post("/", middleware.DeserializeUser, middleware.RequireFarmer, controllers.CreateProduct)
	products.Put("/:id", middleware.DeserializeUser, middleware.RequireFarmer, controllers.UpdateProduct)

	cart := api.Group("/cart", middleware.DeserializeUser)
	cart.Get("/", controllers.ViewCart)
	cart.Post("/add/:id", controllers.AddToCart)
	cart.Post("/update/:id", controllers.UpdateCartQuantity)
	cart.Delete("/remove/:id", controllers.RemoveFromCart)

	api.Post("/buy-now/:id", middleware.DeserializeUser, controllers.BuyNow)

	addresses := api.Group("/addresses", middleware.DeserializeUser)
	addresses.Get("/", controllers.GetMyAddresses)
	addresses.Post("/", controllers.CreateAddress)

	orders := api.Group("/orders", middleware.DeserializeUser)
	orders.Post("/", controllers.PlaceOrder)
	orders.Get("/", controllers.GetMyOrders)
	orders.Get("/:id", controllers.GetOrderDetail)
	orders.Post("/:id/cancel", controllers.CancelOrder)

	farmer := api.Group("/farmer", middleware.DeserializeUser, middleware.RequireFarmer)
	farmer.Get("/dashboard", controllers.FarmerDashboard)
	farmer.Get("/orders", controllers.GetFarmerOrders)
	farmer.Post("/orders/:id/status", controllers.UpdateFarmerOrderStatus)
	farmer.Get("/payments", controllers.GetFarmerPayments)
	farmer.Get("/stock-alerts", controllers.GetStockAlerts)
	farmer.Post("/stock-alerts/:id/ack", controllers.AcknowledgeStockAlert)

	api.Get("/notifications", middleware.DeserializeUser, controllers.GetNotifications)

	// Live notification push. The connection is registered under the
	// authenticated user's id.
	app.Use("/ws", middleware.DeserializeUser, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		user, ok := conn.Locals("user").(models.UserResponse)
		if !ok {
			conn.Close()
			return
		}

		userID := user.ID.String()
		utils.RegisterClient(userID, conn)
		defer utils.RemoveClient(userID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				log.Printf("Websocket closed for user %s: %v", userID, err)
				break
			}
		}
	}))
}
