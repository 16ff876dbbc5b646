package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type DBconfig struct {
	URL      string
	MaxConns int32
}

// RabbitMQConfig is optional; an empty URL disables event publishing.
type RabbitMQConfig struct {
	URL string
}

type RESTconfig struct {
	Port           string
	AllowedOrigins []string
	JWTSecret      string
	UploadsDir     string
}

// FluentConfig is optional; an empty host keeps logging local.
type FluentConfig struct {
	Host      string
	Port      int
	TagPrefix string
}

type LogConfig struct {
	Level string
	JSON  bool
}

// AppConfig holds the whole application configuration.
type AppConfig struct {
	Database DBconfig
	RabbitMQ RabbitMQConfig
	Rest     RESTconfig
	Fluent   FluentConfig
	Log      LogConfig
}

// LoadConfig reads configuration from the environment, with an optional
// .env file on top.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: no .env file loaded (path: %v): %v\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if raw := os.Getenv("DATABASE_MAX_CONNS"); raw != "" {
		maxConns, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("DATABASE_MAX_CONNS must be an integer: %w", err)
		}
		cfg.Database.MaxConns = int32(maxConns)
	}

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")

	cfg.Rest.Port = os.Getenv("PORT")
	if cfg.Rest.Port == "" {
		cfg.Rest.Port = "8080"
	}

	cfg.Rest.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.Rest.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg.Rest.UploadsDir = os.Getenv("UPLOADS_DIR")
	if cfg.Rest.UploadsDir == "" {
		cfg.Rest.UploadsDir = "./uploads"
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173"
	}
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.Rest.AllowedOrigins = append(cfg.Rest.AllowedOrigins, trimmed)
		}
	}

	cfg.Fluent.Host = os.Getenv("FLUENT_HOST")
	if raw := os.Getenv("FLUENT_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("FLUENT_PORT must be an integer: %w", err)
		}
		cfg.Fluent.Port = port
	}
	cfg.Fluent.TagPrefix = os.Getenv("FLUENT_TAG_PREFIX")
	if cfg.Fluent.TagPrefix == "" {
		cfg.Fluent.TagPrefix = "rentwise"
	}

	cfg.Log.Level = os.Getenv("LOG_LEVEL")
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.JSON = os.Getenv("LOG_JSON") == "true"

	return cfg, nil
}
