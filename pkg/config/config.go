package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	PostgresConnStr string
	JWTSecret       string
	MediaDir        string
	PostsOnPage     int
	CacheIndexPage  int // seconds
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:       getEnv("JWT_SECRET", "supersecretjwtkey"),
		MediaDir:        getEnv("MEDIA_DIR", "./media"),
		PostsOnPage:     getEnvInt("POSTS_ON_PAGE", 10),
		CacheIndexPage:  getEnvInt("CACHE_INDEX_PAGE", 20),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		log.Printf("Invalid value %q for %s, using default %d", value, key, defaultValue)
		return defaultValue
	}
	return n
}
