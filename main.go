package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ecorecycle_backend/config"
	"ecorecycle_backend/handlers"
	"ecorecycle_backend/internal/cache"
	"ecorecycle_backend/internal/events"
	"ecorecycle_backend/internal/points"
	"ecorecycle_backend/internal/repository"
	"ecorecycle_backend/internal/service/catalog"
	"ecorecycle_backend/internal/service/collection"
	"ecorecycle_backend/internal/service/dashboard"
	"ecorecycle_backend/internal/service/order"
	"ecorecycle_backend/internal/ws"
	"ecorecycle_backend/middleware"
	"ecorecycle_backend/utils"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if cfg.ResetDB {
		err = config.ResetAndMigrate(db)
	} else {
		err = config.Migrate(db)
	}
	if err != nil {
		log.Fatal("Failed to prepare database:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users := repository.NewUserRepository(db)
	listings := repository.NewListingRepository(db)
	orders := repository.NewOrderRepository(db)
	collections := repository.NewCollectionRepository(db)
	var products repository.ProductRepository = repository.NewProductRepository(db)

	if cfg.RedisURL != "" {
		rdb, err := cache.ConnectRedis(cache.Options{Addr: cfg.RedisURL, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			log.Printf("Redis unavailable, serving products uncached: %v", err)
		} else {
			defer rdb.Close()
			products = cache.NewCachedProductRepository(products, rdb)
			log.Printf("Product cache enabled on %s", cfg.RedisURL)
		}
	}

	hub := ws.NewHub()
	go hub.Run(ctx)

	publishers := []events.Publisher{hub}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.NewKafkaProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Printf("Kafka unavailable, order events stay local: %v", err)
		} else {
			kafka := events.NewKafkaPublisher(producer, cfg.KafkaOrderTopic)
			defer kafka.Close()
			publishers = append(publishers, kafka)
			log.Printf("Publishing order events to %s", cfg.KafkaOrderTopic)
		}
	}

	jwtManager := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	orderService := order.NewService(orders, listings, points.NewDistributor(users), events.Multi(publishers...))
	catalogService := catalog.NewService(products, listings, users)

	app := fiber.New(fiber.Config{
		AppName:      "EcoRecycle Backend",
		ServerHeader: "EcoRecycle Backend Server/1.0",
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    6 << 20,
	})

	middleware.SetupMiddleware(app, cfg)
	app.Static("/uploads", cfg.UploadDir)

	handlers.SetupRoutes(app, handlers.Handlers{
		Auth:          handlers.NewAuthHandler(users, jwtManager),
		User:          handlers.NewUserHandler(users),
		Order:         handlers.NewOrderHandler(orderService),
		Dashboard:     handlers.NewDashboardHandler(dashboard.NewService(users, collections, orders, listings, products)),
		Product:       handlers.NewProductHandler(catalogService),
		Collection:    handlers.NewCollectionHandler(collection.NewService(collections)),
		Cart:          handlers.NewCartHandler(),
		Upload:        handlers.NewUploadHandler(cfg.UploadDir),
		Notifications: handlers.NewNotificationHandler(hub),
	}, jwtManager.AuthMiddleware())

	middleware.SetupErrorHandler(app)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}()

	log.Printf("🚀 Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
