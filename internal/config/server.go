package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ServerConfig holds settings for `rpfire serve`
type ServerConfig struct {
	Port            string
	LogLevel        string
	AllowedOrigins  []string
	TaxRulesPath    string
	ShutdownTimeout time.Duration
}

// NewServerConfig loads server configuration from environment variables
func NewServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:           getEnv("RPFIRE_PORT", "8080"),
		LogLevel:       getEnv("RPFIRE_LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("RPFIRE_ALLOWED_ORIGINS", "*")),
		TaxRulesPath:   getEnv("RPFIRE_TAX_RULES", ""),
	}

	timeout, err := strconv.Atoi(getEnv("RPFIRE_SHUTDOWN_TIMEOUT", "10"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("RPFIRE_SHUTDOWN_TIMEOUT must be a positive number of seconds")
	}
	cfg.ShutdownTimeout = time.Duration(timeout) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the port and log level
func (c *ServerConfig) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("port %q is not a valid TCP port", c.Port)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel into a logrus level
func (c *ServerConfig) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
