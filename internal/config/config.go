// Package config reads the service settings from the environment (optionally from a .env file).
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	LogLevel         string
	ServerRunAddress string
	DatabaseURI      string
	JWTSecret        string

	// StartingPoints is the balance credited to every newly registered user.
	StartingPoints int
	// DirectSwapCompletion selects what completing a direct swap does to the two items: "none" or "exchange".
	DirectSwapCompletion string
	RunMigrations        bool

	// WriteRateLimit and WriteRateBurst bound state-changing requests per user; a zero limit disables limiting.
	WriteRateLimit float64
	WriteRateBurst int
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values")
	}

	LogLevel = os.Getenv("LOG_LEVEL")
	if LogLevel == "" {
		LogLevel = "info"
	}

	ServerRunAddress = os.Getenv("SERVER_RUN_ADDRESS")
	if ServerRunAddress == "" {
		ServerRunAddress = "0.0.0.0:8080"
	}

	DatabaseURI = os.Getenv("DATABASE_URI")
	if DatabaseURI == "" {
		DatabaseURI = "host=db user=postgres password=password dbname=rewear sslmode=disable"
	}

	JWTSecret = os.Getenv("JWT_SECRET")
	if JWTSecret == "" {
		JWTSecret = "supersecretkey"
	}

	StartingPoints = 100
	if v := os.Getenv("STARTING_POINTS"); v != "" {
		points, err := strconv.Atoi(v)
		if err != nil || points < 0 {
			log.Printf("Invalid STARTING_POINTS %q, using %d", v, StartingPoints)
		} else {
			StartingPoints = points
		}
	}

	DirectSwapCompletion = os.Getenv("DIRECT_SWAP_COMPLETION")
	if DirectSwapCompletion == "" {
		DirectSwapCompletion = "none"
	}

	RunMigrations = true
	if v := os.Getenv("RUN_MIGRATIONS"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("Invalid RUN_MIGRATIONS %q, migrations stay enabled", v)
		} else {
			RunMigrations = enabled
		}
	}

	WriteRateLimit = 5
	if v := os.Getenv("WRITE_RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil || limit < 0 {
			log.Printf("Invalid WRITE_RATE_LIMIT %q, using %g", v, WriteRateLimit)
		} else {
			WriteRateLimit = limit
		}
	}

	WriteRateBurst = 20
	if v := os.Getenv("WRITE_RATE_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst < 1 {
			log.Printf("Invalid WRITE_RATE_BURST %q, using %d", v, WriteRateBurst)
		} else {
			WriteRateBurst = burst
		}
	}
}
