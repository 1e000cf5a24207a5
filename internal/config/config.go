package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	JwtSecret  string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	ServerPort string
	Issuer     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	DraftRetention     = 30 * 24 * time.Hour
	DraftReapInterval  = 24 * time.Hour
	DraftMergeAttempts = 3

	AllowedOrigins = []string{"http://localhost:", "http://127.0.0.1:"}
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "forms")
	ServerPort = getEnv("SERVER_PORT", "8080")
	Issuer = getEnv("Issuer", "dynamic-forms")

	RedisAddr = getEnv("REDIS_ADDR", "")
	RedisPassword = getEnv("REDIS_PASSWORD", "")
	RedisDB, _ = strconv.Atoi(getEnv("REDIS_DB", "0"))
	RedisChannel = getEnv("REDIS_CHANNEL", "form-notifications")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "form-uploads")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	if days, err := strconv.Atoi(getEnv("DRAFT_RETENTION_DAYS", "30")); err == nil && days > 0 {
		DraftRetention = time.Duration(days) * 24 * time.Hour
	}
	if d, err := time.ParseDuration(getEnv("DRAFT_REAP_INTERVAL", "24h")); err == nil && d > 0 {
		DraftReapInterval = d
	} else if err != nil {
		log.Printf("Invalid DRAFT_REAP_INTERVAL, keeping %s: %v", DraftReapInterval, err)
	}
	if n, err := strconv.Atoi(getEnv("DRAFT_MERGE_ATTEMPTS", "3")); err == nil && n > 0 {
		DraftMergeAttempts = n
	}
	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		AllowedOrigins = AllowedOrigins[:0]
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				AllowedOrigins = append(AllowedOrigins, o)
			}
		}
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
