package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/jmcatapang/blood-donation-backend/internal/config"
	"github.com/jmcatapang/blood-donation-backend/internal/donation"
	"github.com/jmcatapang/blood-donation-backend/internal/profile"
	"github.com/jmcatapang/blood-donation-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	mustBootstrapSchema(db)

	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileService)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, profileService)

	donationRepo := donation.NewPostgresRepository(db)
	donationService := donation.NewService(donationRepo, profileService)
	donationHandler := donation.NewHandler(donationService)

	userHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	profileHandler.RegisterProtectedRoutes(app)
	donationHandler.RegisterProtectedRoutes(app)

	userHandler.RegisterAdminRoutes(app)
	donationHandler.RegisterAdminRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%s)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func mustBootstrapSchema(db *sql.DB) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
		"userId" SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		staff BOOLEAN NOT NULL DEFAULT FALSE,
		admin BOOLEAN NOT NULL DEFAULT FALSE,
		"createdAt" TEXT,
		"updatedAt" TEXT
	)`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS profiles (
		"profileId" SERIAL PRIMARY KEY,
		"userId" INT NOT NULL UNIQUE REFERENCES users("userId") ON DELETE CASCADE,
		"firstName" TEXT NOT NULL,
		"lastName" TEXT NOT NULL,
		weight DOUBLE PRECISION NOT NULL,
		height DOUBLE PRECISION NOT NULL,
		region TEXT NOT NULL,
		province TEXT NOT NULL,
		municipality TEXT NOT NULL,
		"bloodType" TEXT NOT NULL,
		availability BOOLEAN NOT NULL DEFAULT FALSE,
		"lastDonationDate" TEXT,
		"createdAt" TEXT,
		"updatedAt" TEXT
	)`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS donation_requests (
		"requestId" SERIAL PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		"userId" INT NOT NULL REFERENCES users("userId") ON DELETE CASCADE,
		"requestType" TEXT NOT NULL,
		"bloodType" TEXT NOT NULL,
		region TEXT,
		province TEXT,
		municipality TEXT,
		"createdAt" TEXT,
		"updatedAt" TEXT
	)`); err != nil {
		panic(err)
	}
}
