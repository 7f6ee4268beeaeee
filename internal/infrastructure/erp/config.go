package erp

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/stockflow/backend/internal/domain/sync"
)

// Config validation errors
var (
	ErrConfigMissingBaseURL   = sync.NewDomainError("ERP_CONFIG", "ERP base URL is required")
	ErrConfigMissingAccountID = sync.NewDomainError("ERP_CONFIG", "ERP account ID is required")
	ErrConfigMissingAPIKeyID  = sync.NewDomainError("ERP_CONFIG", "ERP API key ID is required")
	ErrConfigMissingAPISecret = sync.NewDomainError("ERP_CONFIG", "ERP API secret is required")
)

// DefaultTimeoutSeconds is applied when no timeout is configured.
const DefaultTimeoutSeconds = 30

// Config holds the connection settings for the upstream ERP GraphQL
// API. The key ID and secret form the HTTP Basic credentials; the
// account ID is a path segment of the endpoint URL.
type Config struct {
	BaseURL        string
	AccountID      string
	APIKeyID       string
	APISecret      string
	TimeoutSeconds int
}

// NewConfig creates an ERP config with default timeout
func NewConfig(baseURL, accountID, keyID, secret string) *Config {
	return &Config{
		BaseURL:        baseURL,
		AccountID:      accountID,
		APIKeyID:       keyID,
		APISecret:      secret,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Validate checks that all required fields are present and applies
// defaults for optional ones.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.AccountID == "" {
		return ErrConfigMissingAccountID
	}
	if c.APIKeyID == "" {
		return ErrConfigMissingAPIKeyID
	}
	if c.APISecret == "" {
		return ErrConfigMissingAPISecret
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return nil
}

// Endpoint returns the account-scoped GraphQL endpoint URL.
func (c *Config) Endpoint() string {
	return fmt.Sprintf("%s/%s/graphql", strings.TrimRight(c.BaseURL, "/"), c.AccountID)
}

// AuthorizationHeader returns the value for the Authorization header,
// HTTP Basic with the key ID as username and the secret as password.
func (c *Config) AuthorizationHeader() string {
	creds := c.APIKeyID + ":" + c.APISecret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
}
