// Package config defines service configuration and its loading.
package config

import (
	"fmt"
	"runtime"
	"slices"
	"time"
)

// Storage backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	BlobFile    = "file"
	BlobMinIO   = "minio"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is json or pretty.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// PDFEnabled turns PDF decoding on. Read once at startup.
	PDFEnabled bool `koanf:"pdf_enabled"`
	// MinTextLength is the shortest trimmed text accepted for extraction.
	MinTextLength int `koanf:"min_text_length"`
	// MaxUploadBytes caps request bodies.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	QueueSize   int `koanf:"queue_size"`
	WorkerCount int `koanf:"worker_count"`
	DedupeSize  int `koanf:"dedupe_size"`

	// StoreBackend selects the job store: memory or redis.
	StoreBackend  string `koanf:"store_backend"`
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
	RedisPrefix   string `koanf:"redis_prefix"`

	// BlobBackend selects document storage: file or minio.
	BlobBackend    string `koanf:"blob_backend"`
	StoragePath    string `koanf:"storage_path"`
	MinIOEndpoint  string `koanf:"minio_endpoint"`
	MinIOAccessKey string `koanf:"minio_access_key"`
	MinIOSecretKey string `koanf:"minio_secret_key"`
	MinIOBucket    string `koanf:"minio_bucket"`
	MinIOUseSSL    bool   `koanf:"minio_use_ssl"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "json",
		Addr:            ":9080",
		ShutdownTimeout: 30 * time.Second,
		MinTextLength:   10,
		MaxUploadBytes:  10 << 20,
		QueueSize:       10_000,
		WorkerCount:     runtime.NumCPU() * 2,
		DedupeSize:      50_000,
		StoreBackend:    StoreMemory,
		RedisAddr:       "localhost:6379",
		RedisPrefix:     "cvparse",
		BlobBackend:     BlobFile,
		StoragePath:     "storage",
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinTextLength < 1:
		return fmt.Errorf("%w: min_text_length must be at least 1", ErrInvalidConfig)
	case c.MaxUploadBytes < 1:
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	case !slices.Contains([]string{"json", "pretty"}, c.LogFormat):
		return fmt.Errorf("%w: log_format must be json or pretty, got %q", ErrInvalidConfig, c.LogFormat)
	case !slices.Contains([]string{StoreMemory, StoreRedis}, c.StoreBackend):
		return fmt.Errorf("%w: store_backend must be memory or redis, got %q", ErrInvalidConfig, c.StoreBackend)
	case !slices.Contains([]string{BlobFile, BlobMinIO}, c.BlobBackend):
		return fmt.Errorf("%w: blob_backend must be file or minio, got %q", ErrInvalidConfig, c.BlobBackend)
	case c.BlobBackend == BlobMinIO && (c.MinIOEndpoint == "" || c.MinIOBucket == ""):
		return fmt.Errorf("%w: minio_endpoint and minio_bucket are required for the minio backend", ErrInvalidConfig)
	case c.BlobBackend == BlobFile && c.StoragePath == "":
		return fmt.Errorf("%w: storage_path must not be empty", ErrInvalidConfig)
	}
	return nil
}
