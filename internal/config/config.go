package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"backend/internal/pricing"
)

var AppEnv Config

type Config struct {
	MongoURI string
	DBName   string
	Port     string
	Pricing  pricing.Config
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI: getEnvOrDefault("MONGO_URI", ""),
		DBName:   getEnvOrDefault("DB_NAME", "trynex"),
		Port:     getEnvOrDefault("PORT", "8080"),
		Pricing: pricing.Config{
			MetroFee:              getFloatEnv("DELIVERY_FEE_METRO", 70),
			OutsideFee:            getFloatEnv("DELIVERY_FEE_OUTSIDE", 120),
			FreeDeliveryThreshold: getFloatEnv("FREE_DELIVERY_THRESHOLD", 1500),
			MetroDistricts:        getListEnv("METRO_DISTRICTS", "Dhaka,Gazipur,Narayanganj"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key, defaultValue string) []string {
	raw := getEnvOrDefault(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
