package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"farmlink/initializers"
	"farmlink/routes"
	"farmlink/services"
)

func init() {
	config, err := initializers.LoadConfig(".")
	if err != nil {
		log.Fatalf("Could not load environment variables: %v", err)
	}

	initializers.ConnectDB(&config)
	initializers.ConnectRedis(&config)
	initializers.ConnectRabbit(&config)
	initializers.ConnectTelegram(&config)
}

func main() {
	config, _ := initializers.LoadConfig(".")

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ClientOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app)
	routes.NotFoundRoute(app)

	// Periodic sweep for time-based status auto-advance.
	go services.RunSweeper(initializers.DB, config.SweepInterval)

	port := config.ServerPort
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
