// Package config provides centralized default values for cartgate
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Upstream commerce backend
	UpstreamTimeout     time.Duration
	UpstreamEnvironment string
	DefaultSalesChannel string

	// Tenant registry
	TenantConfigDir string

	// Holiday cache
	HolidayCacheTTL time.Duration

	// Logging
	LogDirectory string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Upstream commerce backend. The gateway never retries or caches cart
	// calls; the transport timeout lives on the shared http.Client.
	UpstreamTimeout = getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second)
	UpstreamEnvironment = getEnvString("UPSTREAM_ENVIRONMENT", "vtexcommercestable")
	DefaultSalesChannel = getEnvString("DEFAULT_SALES_CHANNEL", "1")

	// Tenant registry
	TenantConfigDir = getEnvString("TENANT_CONFIG_DIR", "config/tenants")

	// Holiday cache
	HolidayCacheTTL = time.Duration(getEnvInt("HOLIDAY_CACHE_TTL_HOURS", 24)) * time.Hour

	// Logging
	LogDirectory = getEnvString("LOG_DIRECTORY", "logs")
}
