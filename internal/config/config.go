// Package config reads tab_agent configuration from environment variables
// and an optional .env file.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds configuration shared by the switcher popup and the HTTP
// controller.
type Config struct {
	// CDP connection settings
	CDPAddress    string
	CDPPort       int
	HostTimeoutMS int

	// Directory behavior
	ExactMatch bool

	// Browser auto-launch
	LaunchBrowser   bool
	BrowserStartURL string
	ProfileDir      string

	// Controller HTTP settings
	BindAddr         string
	PortCandidates   []string
	PortAutoFallback bool

	// Logging and notifications
	LogLevel     string
	LogFile      string
	NTFYEndpoint string
}

// Load reads configuration from environment variables and optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	cfg := &Config{
		CDPAddress:       getEnvOrDefault("TAB_AGENT_CDP_ADDRESS", "127.0.0.1"),
		CDPPort:          getEnvIntOrDefault("TAB_AGENT_CDP_PORT", 9222),
		HostTimeoutMS:    getEnvIntOrDefault("TAB_AGENT_HOST_TIMEOUT_MS", 5000),
		ExactMatch:       getEnvBoolOrDefault("TAB_AGENT_EXACT_MATCH", false),
		LaunchBrowser:    getEnvBoolOrDefault("TAB_AGENT_LAUNCH_BROWSER", false),
		BrowserStartURL:  getEnvOrDefault("TAB_AGENT_BROWSER_START_URL", "about:blank"),
		ProfileDir:       getEnvOrDefault("TAB_AGENT_PROFILE_DIR", "./profile"),
		BindAddr:         getEnvOrDefault("TAB_AGENT_BIND_ADDR", "127.0.0.1:8732"),
		PortCandidates:   getEnvListOrDefault("TAB_AGENT_PORT_CANDIDATES", []string{"127.0.0.1:8732", "127.0.0.1:8733", "127.0.0.1:8734"}),
		PortAutoFallback: getEnvBoolOrDefault("TAB_AGENT_PORT_AUTO_FALLBACK", true),
		LogLevel:         strings.ToLower(getEnvOrDefault("TAB_AGENT_LOG_LEVEL", "info")),
		LogFile:          getEnvOrDefault("TAB_AGENT_LOG_FILE", "logs/tab_agent.log"),
		NTFYEndpoint:     getEnvOrDefault("TAB_AGENT_NTFY_ENDPOINT", ""),
	}
	if cfg.HostTimeoutMS < 1000 {
		cfg.HostTimeoutMS = 1000
	}
	return cfg, nil
}

// CDPURL returns the DevTools HTTP endpoint.
func (c *Config) CDPURL() string {
	return "http://" + c.CDPAddress + ":" + strconv.Itoa(c.CDPPort)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
