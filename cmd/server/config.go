package main

import (
	"context"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thebartekbanach/tryon/pkg/cache"
	"github.com/thebartekbanach/tryon/pkg/imagefetch"
	"github.com/thebartekbanach/tryon/pkg/settings"
	"github.com/thebartekbanach/tryon/pkg/storage"
	"github.com/thebartekbanach/tryon/pkg/storage/connections"
	"github.com/thebartekbanach/tryon/pkg/tryon"
	"github.com/thebartekbanach/tryon/pkg/upstream"
)

type ServerConfig struct {
	ListenAddr     string
	AllowedOrigins []string

	// AdminToken guards settings and cache invalidation, empty disables the check.
	AdminToken string

	// RunTimeout bounds a whole try-on run, three upstream calls included.
	RunTimeout time.Duration
}

type application struct {
	Settings settings.Store
	TryOn    tryon.Service
	Config   ServerConfig
}

func InitializeServerConfig() ServerConfig {
	config := ServerConfig{
		ListenAddr:     os.Getenv("TRYON_LISTEN_ADDR"),
		AllowedOrigins: envList("TRYON_ALLOWED_ORIGINS"),
		AdminToken:     os.Getenv("TRYON_ADMIN_SECURITY_TOKEN"),
		RunTimeout:     envDuration("TRYON_RUN_TIMEOUT", 3*time.Minute),
	}

	if config.ListenAddr == "" {
		config.ListenAddr = ":80"
	}

	if config.AdminToken == "" {
		log.Println("TRYON_ADMIN_SECURITY_TOKEN is not set, settings and cache endpoints are not protected")
	}

	return config
}

func InitializeStorageArea(ctx context.Context) storage.Area {
	switch backend := os.Getenv("TRYON_STORAGE"); backend {
	case "", "memory":
		return storage.NewMemoryArea(0)
	case "mongo":
		return storage.NewMongoArea(InitializeMongoConnection(ctx, InitializeMongoConnectionConfig()))
	case "minio":
		return storage.NewMinioArea(InitializeMinioConnection(ctx, InitializeMinioConnectionConfig()))
	default:
		log.Panicf("%s: TRYON_STORAGE=%q, expected memory, mongo or minio", storage.ErrUnknownBackend, backend)
		return nil
	}
}

func InitializeMongoConnectionConfig() connections.StorageDBConfig {
	config := connections.StorageDBConfig{
		ConnectionString: os.Getenv("TRYON_MONGO_CONNECTION_STRING"),
		DatabaseName:     os.Getenv("TRYON_MONGO_DATABASE"),
	}

	if config.ConnectionString == "" {
		log.Panic("TRYON_MONGO_CONNECTION_STRING is required environment variable")
	}

	parsedConnectionString, err := url.Parse(config.ConnectionString)
	if err != nil {
		log.Panicf("Error ocurred when parsing TRYON_MONGO_CONNECTION_STRING: %s", err)
	}

	if parsedConnectionString.User == nil {
		log.Panicf("TRYON_MONGO_CONNECTION_STRING must contain credentials")
	}

	return config
}

func InitializeMongoConnection(ctx context.Context, mongoConfig connections.StorageDBConfig) connections.StorageDBConnection {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	storageDbConnection, err := connections.NewStorageDBProductionConnection(ctx, mongoConfig)
	if err != nil {
		log.Panicf("Error ocurred when initializing MongoDB connection: %s", err)
	}

	return storageDbConnection
}

func InitializeMinioConnectionConfig() connections.MinioBlockStorageProductionConnectionConfig {
	config := connections.MinioBlockStorageProductionConnectionConfig{
		Endpoint:  os.Getenv("TRYON_MINIO_ENDPOINT"),
		AccessKey: os.Getenv("TRYON_MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("TRYON_MINIO_SECRET_KEY"),
		Location:  os.Getenv("TRYON_MINIO_LOCATION"),
		Bucket:    os.Getenv("TRYON_MINIO_BUCKET"),
		UseSSL:    os.Getenv("TRYON_MINIO_SSL") == "true",
	}

	if config.Endpoint == "" {
		log.Panic("TRYON_MINIO_ENDPOINT is required environment variable")
	}

	if config.AccessKey == "" {
		log.Panic("TRYON_MINIO_ACCESS_KEY is required environment variable")
	}

	if config.SecretKey == "" {
		log.Panic("TRYON_MINIO_SECRET_KEY is required environment variable")
	}

	if config.Location == "" {
		config.Location = "us-east-1"
	}

	if config.Bucket == "" {
		log.Panic("TRYON_MINIO_BUCKET is required environment variable")
	}

	return config
}

func InitializeMinioConnection(ctx context.Context, minioConfig connections.MinioBlockStorageProductionConnectionConfig) connections.MinioBlockStorageConnection {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	minioBlockStorageConnection, err := connections.NewMinioBlockStorageProductionConnection(ctx, minioConfig)
	if err != nil {
		log.Panicf("Error ocurred when initializing Minio connection: %s", err)
	}

	return &minioBlockStorageConnection
}

func InitializeUpstreamConfig() upstream.Config {
	config := upstream.Config{
		BaseURL:           os.Getenv("TRYON_UPSTREAM_BASE_URL"),
		DetectionModel:    os.Getenv("TRYON_DETECTION_MODEL"),
		ImageModel:        os.Getenv("TRYON_IMAGE_MODEL"),
		Timeout:           envDuration("TRYON_UPSTREAM_TIMEOUT", upstream.DefaultTimeout),
		RequestsPerMinute: envInt("TRYON_UPSTREAM_RATE_PER_MINUTE", 30),
	}

	if config.BaseURL != "" {
		if _, err := url.Parse(config.BaseURL); err != nil {
			log.Panicf("Error ocurred when parsing TRYON_UPSTREAM_BASE_URL: %s", err)
		}
	}

	return config
}

func InitializeUpstreamClient(config upstream.Config, settingsStore settings.Store) upstream.ContentGenerator {
	return upstream.NewClient(config, settingsStore)
}

func InitializeImageFetchConfig() imagefetch.Config {
	return imagefetch.Config{
		AllowedDomains: envList("TRYON_ALLOWED_DOMAINS"),
	}
}

func InitializeCacheConfig() cache.Config {
	return cache.Config{
		Budget:         int64(envInt("TRYON_CACHE_BUDGET_BYTES", int(cache.DefaultBudget))),
		RetentionFloor: envInt("TRYON_CACHE_RETENTION_FLOOR", cache.DefaultRetentionFloor),
		KeyPrefix:      cache.DefaultKeyPrefix,
	}
}

// envList splits a comma separated variable, defaulting to a match-all glob.
func envList(name string) []string {
	values := strings.Split(os.Getenv(name), ",")
	if len(values) == 0 || values[0] == "" && len(values) == 1 {
		return []string{"*"}
	}

	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}

	return values
}

func envDuration(name string, fallback time.Duration) time.Duration {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Panicf("Error ocurred when parsing %s: %s", name, err)
	}

	return duration
}

func envInt(name string, fallback int) int {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}

	number, err := strconv.Atoi(value)
	if err != nil {
		log.Panicf("Error ocurred when parsing %s: %s", name, err)
	}

	return number
}
