package initializers

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	BackendMemory = "memory"
	BackendMySQL  = "mysql"
	BackendRemote = "remote"
)

type Config struct {
	Port           string
	JWTSecret      string
	Backend        string
	DatabaseDSN    string
	RemoteAPIURL   string
	DeliveryFee    decimal.Decimal
	AllowedOrigins []string
	AvatarBucket   string

	FromEmail         string
	FromEmailPassword string
	FromEmailSMTP     string
	SMTPAddress       string
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// LoadEnv reads .env when present and builds the configuration from the environment.
func LoadEnv() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using process environment")
	}

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		Backend:           strings.ToLower(getEnv("BACKEND", BackendMemory)),
		DatabaseDSN:       os.Getenv("DB_DSN"),
		RemoteAPIURL:      os.Getenv("REMOTE_API_URL"),
		AvatarBucket:      os.Getenv("AVATAR_BUCKET"),
		FromEmail:         os.Getenv("FROM_EMAIL"),
		FromEmailPassword: os.Getenv("FROM_EMAIL_PASSWORD"),
		FromEmailSMTP:     os.Getenv("FROM_EMAIL_SMTP"),
		SMTPAddress:       os.Getenv("SMTP_ADDRESS"),
	}

	fee, err := decimal.NewFromString(getEnv("DELIVERY_FEE", "2.99"))
	if err != nil || fee.IsNegative() {
		return Config{}, fmt.Errorf("invalid DELIVERY_FEE %q", os.Getenv("DELIVERY_FEE"))
	}
	cfg.DeliveryFee = fee

	for _, origin := range strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:8081"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}
	switch cfg.Backend {
	case BackendMemory:
	case BackendMySQL:
		if cfg.DatabaseDSN == "" {
			return Config{}, fmt.Errorf("DB_DSN is required for the mysql backend")
		}
	case BackendRemote:
		if cfg.RemoteAPIURL == "" {
			return Config{}, fmt.Errorf("REMOTE_API_URL is required for the remote backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown BACKEND %q", cfg.Backend)
	}
	return cfg, nil
}
