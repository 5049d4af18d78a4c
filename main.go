package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"kioskmart/auth"
	"kioskmart/config"
	"kioskmart/db"
	"kioskmart/notify"
	"kioskmart/orders"
	"kioskmart/routes"
	"kioskmart/ws"
)

func main() {
	cfg := config.Load()

	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := db.Seed(gdb, cfg); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	if _, err := os.Stat(cfg.UploadsDir); os.IsNotExist(err) {
		os.Mkdir(cfg.UploadsDir, 0755)
	}

	mailer := notify.NewMailer(cfg)
	handler := &routes.Handler{
		DB:     gdb,
		Config: cfg,
		Tokens: auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL),
		Orders: orders.NewService(gdb, notify.NewEmailNotifier(gdb, mailer)),
		Hub:    ws.NewHub(),
	}

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())
	app.Static("/uploads", cfg.UploadsDir)

	routes.Setup(app, handler)

	log.Fatal(app.Listen(":" + cfg.Port))
}
