package tenant

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/AtRiskMedia/cartgate-go/internal/infrastructure/observability/logging"
)

// Manager resolves tenant contexts and caches loaded configurations.
type Manager struct {
	configs     map[string]*Config
	multiTenant bool
	logger      *logging.ChanneledLogger
	mu          sync.RWMutex
}

// NewManager creates a new tenant manager
func NewManager(logger *logging.ChanneledLogger) *Manager {
	multiTenant := false
	if val := os.Getenv("ENABLE_MULTI_TENANT"); val != "" {
		multiTenant, _ = strconv.ParseBool(val)
	}

	return &Manager{
		configs:     make(map[string]*Config),
		multiTenant: multiTenant,
		logger:      logger,
	}
}

// GetLogger returns the manager's logger
func (m *Manager) GetLogger() *logging.ChanneledLogger {
	return m.logger
}

// IsMultiTenant reports whether multi-tenant mode is enabled
func (m *Manager) IsMultiTenant() bool {
	return m.multiTenant
}

// ResolveTenantID maps a request-supplied tenant ID to the effective one.
// Single-tenant installs always use "default".
func (m *Manager) ResolveTenantID(requested string) (string, error) {
	if !m.multiTenant {
		return "default", nil
	}
	if requested == "" {
		return "", fmt.Errorf("missing tenant ID header in multi-tenant mode")
	}
	return requested, nil
}

// GetContext returns a tenant context for the given tenant ID, loading and
// caching its configuration on first use.
func (m *Manager) GetContext(tenantID string) (*Context, error) {
	m.mu.RLock()
	cfg, ok := m.configs[tenantID]
	m.mu.RUnlock()

	if !ok {
		loaded, err := LoadTenantConfig(tenantID)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.configs[tenantID] = loaded
		m.mu.Unlock()

		m.logger.Tenant().Info("Tenant configuration loaded",
			"tenantId", tenantID,
			"account", loaded.Account,
			"environment", loaded.Environment,
		)
		cfg = loaded
	}

	return &Context{TenantID: tenantID, Config: cfg}, nil
}

// Register installs a pre-built config, used by tests and provisioning.
func (m *Manager) Register(cfg *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs[cfg.TenantID] = cfg
}

// Close cleans up manager resources
func (m *Manager) Close() error {
	return nil
}
