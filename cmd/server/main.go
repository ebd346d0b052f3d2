package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/fatales/internal/cache"
	"github.com/example/fatales/internal/cms"
	"github.com/example/fatales/internal/config"
	"github.com/example/fatales/internal/database"
	"github.com/example/fatales/internal/handlers"
	"github.com/example/fatales/internal/media"
	"github.com/example/fatales/internal/routes"
	"github.com/example/fatales/internal/services"
	"github.com/example/fatales/internal/store"
	"github.com/example/fatales/internal/storefront"
)

func main() {
	cfg := config.Load()

	client := cms.New(cfg.CMSAPIURL, cms.WithTimeout(cfg.CMSTimeout))

	var builder media.URLBuilder
	if cfg.CloudinaryURL != "" {
		cld, err := media.NewCloudinaryBuilder(cfg.CloudinaryURL)
		if err != nil {
			log.Printf("Cloudinary disabled: %v", err)
		} else {
			builder = cld
		}
	}
	resolver := media.NewResolver(cfg.CMSAPIURL, builder)

	deps := routes.Deps{
		Storefront: storefront.NewService(client, resolver),
	}

	if rdb := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		defer rdb.Close()
		r := cache.NewRedis(rdb, cfg.CacheTTL)
		deps.Pages = r
		deps.Limiter = r
	}

	db, err := database.Connect(cfg.DatabaseURL)
	switch {
	case errors.Is(err, database.ErrNoDSN):
		log.Println("DATABASE_URL not set, contact settings use defaults and concierge requests are not stored")
	case err != nil:
		log.Fatalf("database: %v", err)
	default:
		deps.Contacts = store.NewContacts(db)
		deps.Concierge = store.NewConcierge(db)
	}

	if telegram := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat); telegram.Enabled() {
		deps.Notifier = telegram
	}

	app := fiber.New(fiber.Config{
		AppName:      "Fatales Storefront",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
	}))

	routes.Register(app, cfg, deps)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Printf("fiber.Shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on :%s (CMS %s)", cfg.AppPort, client.BaseURL())
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
