package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port             string
	MySQLDSN         string
	CredentialsFile  string
	ProjectID        string
	StorageBucket    string
	RemoteCollection string
	FCMTopic         string
	NotifyInterval   time.Duration
	SyncTimeout      time.Duration
	QuoteAPIURL      string
}

// Load reads the .env file once and builds the process configuration.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: No .env file found or failed to load")
	}

	cfg := &Config{
		Port:             getEnv("APP_PORT", "8080"),
		MySQLDSN:         os.Getenv("MYSQL_DSN"),
		CredentialsFile:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_1"),
		ProjectID:        os.Getenv("FIRESTORE_PROJECT_ID"),
		StorageBucket:    os.Getenv("STORAGE_BUCKET"),
		RemoteCollection: getEnv("REMOTE_COLLECTION", "Tasks"),
		FCMTopic:         getEnv("FCM_TOPIC", "deadline-alerts"),
		NotifyInterval:   getDuration("NOTIFY_INTERVAL", time.Hour),
		SyncTimeout:      getDuration("SYNC_TIMEOUT", 30*time.Second),
		QuoteAPIURL:      getEnv("QUOTE_API_URL", "https://zenquotes.io/api/today"),
	}

	if cfg.MySQLDSN == "" {
		return nil, fmt.Errorf("MYSQL_DSN is not configured")
	}
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS_1 is not configured")
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("FIRESTORE_PROJECT_ID is not configured")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using %s", key, value, fallback)
		return fallback
	}
	return d
}
