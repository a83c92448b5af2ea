package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Client configures the API client from the environment.
type Client struct {
	Token      string
	ServerURL  string
	APIVersion string
	LogLevel   string
}

// Server configures the local stand-in service.
type Server struct {
	Port      string
	JWTSecret string
	JWTTTLHrs int
	LogLevel  string
	Env       string
}

// LoadClient reads HIPCHAT_* variables, after loading .env if present.
func LoadClient() (*Client, error) {
	_ = godotenv.Load()

	c := &Client{
		Token:      os.Getenv("HIPCHAT_TOKEN"),
		ServerURL:  getEnv("HIPCHAT_SERVER_URL", "https://api.hipchat.com"),
		APIVersion: getEnv("HIPCHAT_API_VERSION", "v2"),
		LogLevel:   getEnv("HIPCHAT_LOG_LEVEL", "info"),
	}
	if c.Token == "" {
		return nil, fmt.Errorf("config: missing env: HIPCHAT_TOKEN")
	}
	return c, nil
}

// LoadServer reads the stand-in service settings, after loading .env if present.
func LoadServer() (*Server, error) {
	_ = godotenv.Load()

	ttl, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("config: JWT_TTL_HOURS must be a positive integer, got %q", os.Getenv("JWT_TTL_HOURS"))
	}

	s := &Server{
		Port:      getEnv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTLHrs: ttl,
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		Env:       getEnv("ENV", "dev"),
	}
	if s.JWTSecret == "" {
		return nil, fmt.Errorf("config: missing env: JWT_SECRET")
	}
	return s, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
