// Package tenant provides tenant context management for multi-tenant support.
package tenant

// Context holds tenant-specific request context
type Context struct {
	TenantID string
	Config   *Config
}
