// Package config loads pipeline and service configuration from the
// environment, with .env support for local development. Configuration
// errors are fatal at load time, before any processing begins.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"polyglotai/internal/hygiene"
	"polyglotai/internal/pipeline"
	"polyglotai/internal/sections"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel  slog.Level
	LogFormat string // "text" or "json"

	// Chunking and hygiene.
	ChunkSize         int
	Overlap           int
	MinWords          int
	MinCharsEN        int
	MinCharsFR        int
	MinCharsAR        int
	DigitsPunctDrop   float64
	ArMovieDigitsDrop float64
	Normalize         bool
	Dedupe            bool
	PrependTitle      bool
	StrictLanguage    bool
	TitleMode         sections.TitleMode

	// Audit store. Empty path disables the sqlite audit database.
	DBPath string

	// Embedding service.
	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingAPIKey    string
	VectorSize         int

	// Vector store. Collections are partitioned per language as
	// "{QdrantCollection}_{lang}".
	QdrantURL        string
	QdrantCollection string

	APIPort string
}

// Load reads configuration from environment variables and returns a
// Config. A .env file in the working directory is loaded first if
// present; variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		ChunkSize:          350,
		Overlap:            60,
		MinWords:           6,
		MinCharsEN:         50,
		MinCharsFR:         50,
		MinCharsAR:         60,
		DigitsPunctDrop:    0.60,
		ArMovieDigitsDrop:  0.30,
		DBPath:             getEnv("DB_PATH", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "intfloat/multilingual-e5-base"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", "dummy-key"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "polyglotai"),
		APIPort:            getEnv("API_PORT", "9000"),
	}

	var err error
	if cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", cfg.ChunkSize); err != nil {
		return nil, err
	}
	if cfg.Overlap, err = getEnvInt("OVERLAP", cfg.Overlap); err != nil {
		return nil, err
	}
	if cfg.MinWords, err = getEnvInt("MIN_WORDS", cfg.MinWords); err != nil {
		return nil, err
	}
	if cfg.MinCharsEN, err = getEnvInt("MIN_CHARS_EN", cfg.MinCharsEN); err != nil {
		return nil, err
	}
	if cfg.MinCharsFR, err = getEnvInt("MIN_CHARS_FR", cfg.MinCharsFR); err != nil {
		return nil, err
	}
	if cfg.MinCharsAR, err = getEnvInt("MIN_CHARS_AR", cfg.MinCharsAR); err != nil {
		return nil, err
	}
	if cfg.DigitsPunctDrop, err = getEnvFloat("DIGITS_PUNCT_DROP", cfg.DigitsPunctDrop); err != nil {
		return nil, err
	}
	if cfg.ArMovieDigitsDrop, err = getEnvFloat("AR_MOVIE_DIGITS_DROP", cfg.ArMovieDigitsDrop); err != nil {
		return nil, err
	}
	if cfg.VectorSize, err = getEnvInt("VECTOR_SIZE", 1024); err != nil {
		return nil, err
	}
	cfg.Normalize = getEnvBool("NORMALIZE", false)
	cfg.Dedupe = getEnvBool("DEDUPE", true)
	cfg.PrependTitle = getEnvBool("PREPEND_TITLE", false)
	cfg.StrictLanguage = getEnvBool("STRICT_LANGUAGE", true)

	mode := sections.TitleMode(getEnv("TITLE_MODE", string(sections.TitleLight)))
	switch mode {
	case sections.TitleRaw, sections.TitleLight, sections.TitleFull:
		cfg.TitleMode = mode
	default:
		return nil, fmt.Errorf("TITLE_MODE must be raw, light or full, got %q", mode)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.Overlap < 0 || c.Overlap >= c.ChunkSize {
		return fmt.Errorf("OVERLAP must be in [0, CHUNK_SIZE), got %d with chunk size %d", c.Overlap, c.ChunkSize)
	}
	if c.DigitsPunctDrop <= 0 || c.DigitsPunctDrop > 1 {
		return fmt.Errorf("DIGITS_PUNCT_DROP must be in (0, 1], got %v", c.DigitsPunctDrop)
	}
	if c.ArMovieDigitsDrop <= 0 || c.ArMovieDigitsDrop > 1 {
		return fmt.Errorf("AR_MOVIE_DIGITS_DROP must be in (0, 1], got %v", c.ArMovieDigitsDrop)
	}
	if c.VectorSize <= 0 {
		return fmt.Errorf("VECTOR_SIZE must be positive, got %d", c.VectorSize)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// PipelineOptions converts the configuration into pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		ChunkSize:      c.ChunkSize,
		Overlap:        c.Overlap,
		Normalize:      c.Normalize,
		Dedupe:         c.Dedupe,
		PrependTitle:   c.PrependTitle,
		StrictLanguage: c.StrictLanguage,
		Thresholds: hygiene.Thresholds{
			MinChars:          map[string]int{"en": c.MinCharsEN, "fr": c.MinCharsFR, "ar": c.MinCharsAR},
			MinWords:          c.MinWords,
			DigitsPunctDrop:   c.DigitsPunctDrop,
			ArMovieDigitsDrop: c.ArMovieDigitsDrop,
		},
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", s)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
