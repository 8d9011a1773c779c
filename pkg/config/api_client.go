package config

import (
	"fmt"
	"strings"
	"time"
)

// APIClientConfig holds the settings for an outbound HTTP API client.
type APIClientConfig struct {
	BaseURL string        `koanf:"baseUrl"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *APIClientConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("API base URL is not configured")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("API base URL must start with 'http://' or 'https://': %s", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("API client timeout is not configured")
	}
	return nil
}
