package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Feed   FeedConfig
	Speech SpeechConfig
	Audio  AudioConfig
	Redis  RedisConfig
	OTEL   OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// FeedConfig holds upstream feed configuration
type FeedConfig struct {
	BaseURL        string
	CacheTTLSecs   int
	TimeoutSeconds int
}

// SpeechConfig holds text-to-speech configuration
type SpeechConfig struct {
	Endpoint       string
	Language       string
	TimeoutSeconds int
}

// AudioConfig holds audio artifact storage configuration
type AudioConfig struct {
	Dir string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables.
// FEED_BASE_URL is the only required value; everything else has a default.
func Load() (*Config, error) {
	baseURL := getEnv("FEED_BASE_URL", "")
	if baseURL == "" {
		return nil, fmt.Errorf("FEED_BASE_URL is required")
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Feed: FeedConfig{
			BaseURL:        baseURL,
			CacheTTLSecs:   getEnvAsInt("FEED_CACHE_TTL_SECONDS", 10800),
			TimeoutSeconds: getEnvAsInt("FEED_TIMEOUT_SECONDS", 15),
		},
		Speech: SpeechConfig{
			Endpoint:       getEnv("SPEECH_ENDPOINT", "https://translate.google.com/translate_tts"),
			Language:       getEnv("SPEECH_LANGUAGE", "ja"),
			TimeoutSeconds: getEnvAsInt("SPEECH_TIMEOUT_SECONDS", 15),
		},
		Audio: AudioConfig{
			Dir: getEnv("AUDIO_DIR", "./audio"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "kyukyu-annai"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// CacheTTL returns the feed cache duration
func (c *FeedConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSecs) * time.Second
}

// Timeout returns the feed request timeout
func (c *FeedConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout returns the synthesis request timeout
func (c *SpeechConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
