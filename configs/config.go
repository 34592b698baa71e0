package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	UpstreamURL    string // Sporkbox core API base URL
	JWTSecret      string
	StoreDriver    string // sqlite | redis
	DBSource       string
	RedisAddr      string
	CartTTL        time.Duration
	AllowedOrigins []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	ttlHours := 4
	if v, err := strconv.Atoi(getEnv("CART_TTL_HOURS", "4")); err == nil && v > 0 {
		ttlHours = v
	}

	origins := strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Port:           getEnv("PORT", "8000"),
		UpstreamURL:    getEnv("UPSTREAM_API_URL", "http://localhost:5100"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		StoreDriver:    getEnv("STORE_DRIVER", "sqlite"),
		DBSource:       getEnv("DB_SOURCE", "sporkbox.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		CartTTL:        time.Duration(ttlHours) * time.Hour,
		AllowedOrigins: origins,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
