package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"ctfboard/database"
	"ctfboard/handlers"
	"ctfboard/handlers/admin"
	"ctfboard/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database. Serving without storage is pointless, so a
	// failed pool is fatal at startup.
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("FATAL: migrations failed: %v", err)
	}

	// Wire handlers to the storage client
	defaultHintCredit := getEnvInt("DEFAULT_HINT_CREDIT", 0)
	handlers.Init(db, defaultHintCredit)
	admin.Init(db, defaultHintCredit)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)

	// Public scoreboard and announcements
	api.Get("/scoreboard/:division", handlers.GetScoreboard)
	api.Get("/announcements", handlers.GetAnnouncements)

	// Team routes (require authentication)
	teamGroup := api.Group("/teams")
	teamGroup.Use(middleware.AuthMiddleware)
	teamGroup.Get("/directory", handlers.GetTeamDirectory)
	teamGroup.Get("/me", handlers.GetCurrentTeam)
	teamGroup.Put("/me", handlers.UpdateCurrentTeam)
	teamGroup.Post("/finish", handlers.FinishRun)

	// Submission routes
	submissionGroup := api.Group("/submissions")
	submissionGroup.Use(middleware.AuthMiddleware)
	submissionGroup.Post("/", handlers.SubmitAnswer)
	submissionGroup.Get("/solved", handlers.GetSolvedPuzzles)

	// Hint routes
	hintGroup := api.Group("/hints")
	hintGroup.Use(middleware.AuthMiddleware)
	hintGroup.Post("/request", handlers.RequestHint)
	hintGroup.Get("/credit", handlers.GetHintCredit)
	hintGroup.Get("/:puzzle", handlers.GetUnlockedHints)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware)
	adminGroup.Get("/teams", admin.GetTeams)
	adminGroup.Post("/teams/:id/ban", admin.BanTeam)
	adminGroup.Post("/hint-credits", admin.GrantHintCredit)
	adminGroup.Get("/logs", admin.GetLogs)
	adminGroup.Get("/logs/export", admin.ExportLogs)
	adminGroup.Post("/announcements", handlers.CreateAnnouncement)

	// Announcement broadcast socket
	app.Use("/ws", handlers.UpgradeRequired)
	app.Get("/ws/announcements", handlers.AnnouncementSocket)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	app.Use(handlers.NotFound)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("HTTP server starting on port %s", port)
	log.Printf("Environment: %s", getEnv("APP_ENV", "development"))

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
