package config

import (
	"log"
	"os"

	"github.com/timebridge/timebridge-server/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Env var names read by the server. Provider keys are read at call time,
// the required ones are checked once at startup.
const (
	EnvDatabaseURL    = "DATABASE_URL"
	EnvJWTSecret      = "JWT_SECRET"
	EnvWeatherKey     = "WEATHER_API_KEY"
	EnvGeminiKey      = "GEMINI_API_KEY"
	EnvMapsKey        = "GOOGLE_MAPS_API_KEY"
	EnvSendgridKey    = "SENDGRID_API_KEY"
	EnvSendgridFrom   = "SENDGRID_FROM_EMAIL"
	EnvGoogleClientID = "GOOGLE_CLIENT_ID"
)

// MustLoadEnv verifies required configuration and exits when any is missing.
func MustLoadEnv() {
	var missing []string
	for _, name := range []string{EnvDatabaseURL, EnvJWTSecret, EnvWeatherKey} {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v (create a .env file with these values)", missing)
	}
}

// ConnectDB opens the PostgreSQL connection and migrates the schema.
func ConnectDB() {
	dsn := os.Getenv(EnvDatabaseURL)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Meeting{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Guard against a lost read-then-write race on the booking conflict
	// check: at most one live meeting per owner per start instant.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_meetings_owner_start_live
		 ON meetings (owner_id, start_at) WHERE status <> 'canceled'`,
	).Error; err != nil {
		log.Fatalf("failed to create booking index: %v", err)
	}

	DB = db
	log.Println("Connected to PostgreSQL & migrated successfully")
}
