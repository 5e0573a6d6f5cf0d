package config

import (
	"fmt"

	"github.com/courtflow/courtflow/auth"
)

// PredictionConfig defines the connection to the external predictor service.
type PredictionConfig struct {
	// Mode selects the engine: "mock" or "http".
	Mode string `json:"mode"`
	// BaseURL is the predictor service root for the http mode.
	BaseURL string `json:"base_url"`
	// Auth holds the OAuth2 client credentials for the http mode. When
	// AuthURL is empty the client sends unauthenticated requests.
	Auth auth.Conf `json:"auth"`
	// TimeoutSeconds bounds each predictor call.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *PredictionConfig) SetDefaults() {
	if c.Mode == "" {
		c.Mode = "mock"
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c PredictionConfig) Validate() error {
	switch c.Mode {
	case "mock":
		return nil
	case "http":
		if c.BaseURL == "" {
			return fmt.Errorf("base_url is required for the http predictor")
		}
		return nil
	default:
		return fmt.Errorf("unknown prediction mode %s", c.Mode)
	}
}
