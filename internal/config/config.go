package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port              string
	MongoURI          string
	DBName            string
	JWTSecret         string
	TokenTTL          time.Duration
	BraintreeEnv      string
	BraintreeMerchant string
	BraintreePublic   string
	BraintreePrivate  string
	CORSOrigins       []string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		MongoURI:          getEnvOrDefault("MONGO_URI", ""),
		DBName:            getEnvOrDefault("DB_NAME", "ecommerce"),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", ""),
		TokenTTL:          getDurationEnv("TOKEN_TTL_DAYS", 7, 24*time.Hour),
		BraintreeEnv:      getEnvOrDefault("BRAINTREE_ENV", "sandbox"),
		BraintreeMerchant: getEnvOrDefault("BRAINTREE_MERCHANT_ID", ""),
		BraintreePublic:   getEnvOrDefault("BRAINTREE_PUBLIC_KEY", ""),
		BraintreePrivate:  getEnvOrDefault("BRAINTREE_PRIVATE_KEY", ""),
		CORSOrigins:       getListEnv("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getListEnv(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
