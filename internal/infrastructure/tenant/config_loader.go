// Package tenant handles loading and providing tenant-specific configurations.
package tenant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AtRiskMedia/cartgate-go/pkg/config"
)

// Config represents the structure of a single tenant's configuration.
// Each tenant maps one storefront to one commerce account.
type Config struct {
	TenantID     string   `json:"tenantId"`
	Account      string   `json:"account"`
	Environment  string   `json:"environment,omitempty"`
	SalesChannel string   `json:"salesChannel,omitempty"`
	Domains      []string `json:"domains,omitempty"`

	// BaseURL overrides the derived commerce endpoint. Used for local
	// development against a stub backend.
	BaseURL string `json:"baseUrl,omitempty"`
}

// CommerceBaseURL returns the root URL of the tenant's commerce backend.
func (c *Config) CommerceBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.%s.com.br", c.Account, c.Environment)
}

// AuthCookieName returns the account-scoped authentication cookie name.
func (c *Config) AuthCookieName() string {
	return "VtexIdclientAutCookie_" + c.Account
}

// LoadTenantConfig loads configuration for a specific tenant from its JSON file.
func LoadTenantConfig(tenantID string) (*Config, error) {
	configPath := filepath.Join(config.TenantConfigDir, tenantID+".json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("tenant config file not found at %s", configPath)
	}

	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read tenant config file: %w", err)
	}

	var tenantConfig Config
	if err := json.Unmarshal(configFile, &tenantConfig); err != nil {
		return nil, fmt.Errorf("could not parse tenant config json: %w", err)
	}

	tenantConfig.TenantID = tenantID
	if tenantConfig.Account == "" {
		return nil, fmt.Errorf("tenant %s config is missing the account name", tenantID)
	}
	if tenantConfig.Environment == "" {
		tenantConfig.Environment = config.UpstreamEnvironment
	}
	if tenantConfig.SalesChannel == "" {
		tenantConfig.SalesChannel = config.DefaultSalesChannel
	}

	return &tenantConfig, nil
}
