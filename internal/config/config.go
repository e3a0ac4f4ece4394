package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbDRIVER   string
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
	DbPATH     string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Storage struct {
	Backend          string
	UploadDir        string
	MaxUploadSize    int64
	ProfilePhotoEdge uint
}

type Config struct {
	ServerPort           int
	DB                   DB
	MinIO                MinIO
	Storage              Storage
	JWTSecretKey         string
	JWTRefreshSecretKey  string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	BcryptCost           int
	CORSAllowedOrigins   []string
	ShutdownTimeout      time.Duration
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseDuration accepts time.ParseDuration syntax plus a whole-day suffix ("7d").
func parseDuration(value string, fallback time.Duration) time.Duration {
	if days, ok := strings.CutSuffix(value, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
		return fallback
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbDRIVER:   getEnv("DB_DRIVER", "postgres"),
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "forum"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
		DbPATH:     getEnv("DB_PATH", "forum.db"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "uploads"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadStorage() Storage {
	return Storage{
		Backend:          getEnv("STORAGE_BACKEND", "local"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize:    parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		ProfilePhotoEdge: uint(getEnvAsInt("PROFILE_PHOTO_MAX_EDGE", 512)),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	secret := getEnv("JWT_SECRET_KEY", "")

	return &Config{
		ServerPort:           getEnvAsInt("SERVER_PORT", 3000),
		DB:                   LoadDB(),
		MinIO:                LoadMinIO(),
		Storage:              LoadStorage(),
		JWTSecretKey:         secret,
		JWTRefreshSecretKey:  getEnv("JWT_REFRESH_SECRET_KEY", secret+".refresh"),
		AccessTokenDuration:  parseDuration(getEnv("ACCESS_TOKEN_DURATION", "1h"), time.Hour),
		RefreshTokenDuration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "7d"), 7*24*time.Hour),
		BcryptCost:           getEnvAsInt("BCRYPT_COST", 10),
		CORSAllowedOrigins:   getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout:      parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
	}
}
