// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds the processing run configuration.
type Config struct {
	// Query and Limit select the inbound messages per run.
	Query string
	Limit int

	// Status labels applied after each message's outcome.
	LabelProcessed string
	LabelError     string
	LabelDuplicate string

	// NotifyEmail receives outcome notifications.
	NotifyEmail string

	// InboxDir is the directory inbox root.
	InboxDir string
	// LedgerPath is the SQLite ledger file.
	LedgerPath string

	// ArchiveBackend selects "local" or "minio".
	ArchiveBackend string
	// ArchiveDir is the local archive root (local backend).
	ArchiveDir string
	// ArchiveRoot is the fixed top folder inside the archive.
	ArchiveRoot string

	// MinIO settings (minio backend).
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSSL       bool

	// RegistryFile optionally replaces the built-in variants.
	RegistryFile string

	LogLevel string
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	limit, err := strconv.Atoi(os.Getenv("R60_MAX_MESSAGES"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	return &Config{
		Query:          os.Getenv("R60_QUERY"),
		Limit:          limit,
		LabelProcessed: getenv("R60_LABEL_PROCESSED", "R60/Procesado"),
		LabelError:     getenv("R60_LABEL_ERROR", "R60/Error"),
		LabelDuplicate: getenv("R60_LABEL_DUPLICATE", "R60/Duplicado"),
		NotifyEmail:    getenv("R60_NOTIFY_EMAIL", "operador@localhost"),
		InboxDir:       getenv("R60_INBOX_DIR", "inbox"),
		LedgerPath:     getenv("R60_LEDGER_PATH", "r60.db"),
		ArchiveBackend: getenv("R60_ARCHIVE_BACKEND", "local"),
		ArchiveDir:     getenv("R60_ARCHIVE_DIR", "archive"),
		ArchiveRoot:    getenv("R60_ARCHIVE_ROOT", "R60_PROCESADOS"),
		MinioEndpoint:  getenv("R60_MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: os.Getenv("R60_MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("R60_MINIO_SECRET_KEY"),
		MinioBucket:    getenv("R60_MINIO_BUCKET", "r60-archive"),
		MinioSSL:       os.Getenv("R60_MINIO_SSL") == "true",
		RegistryFile:   os.Getenv("R60_REGISTRY_FILE"),
		LogLevel:       getenv("LOG_LEVEL", "INFO"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
