package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"dating-match-system/handlers"
	"dating-match-system/middleware"
	"dating-match-system/models"
	"dating-match-system/services"
	"dating-match-system/utils"
	"dating-match-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB — profile photos only
	})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitPhotoStorage(); err != nil {
		log.Fatal("failed to initialize photo storage:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.DatingUser{},
		&models.UserLocation{},
		&models.UserInterest{},
		&models.Like{},
		&models.Match{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	notifier, err := services.NewMatchNotifierFromEnv()
	if err != nil {
		log.Fatal("failed to init match notifier:", err)
	}
	if notifier == nil {
		log.Println("⚠️  BOT_TOKEN not set — match notifications disabled")
	}

	sessions := services.NewInMemorySessionStore()
	geoService := services.NewGeoService(db)
	interestService := services.NewInterestService(db)
	likeService := services.NewLikeService(db)
	matchService := services.NewMatchService(db)
	discoveryService := services.NewDiscoveryService(db, geoService, interestService, likeService, sessions)
	swipeService := services.NewSwipeService(db, likeService, matchService, sessions, notifier)
	profileService := services.NewProfileService(db, geoService, interestService, matchService)
	housekeeping := services.NewHousekeepingService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	presenceSweeper := workers.NewPresenceSweeper(db)
	presenceSweeper.Start(ctx)

	housekeeping.StartHousekeeping()

	// Profile routes first: their public lookups must register ahead of the
	// secured route groups.
	handlers.SetupProfileRoutes(app, profileService)
	handlers.SetupDiscoveryRoutes(app, discoveryService, swipeService)

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Presence Sweep Worker running")
	log.Println("✅ Housekeeping scheduler running (VIP expiry, inactive sweep)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
