package config

import "fmt"

// APIConfig controls the HTTP API of the serve command.
type APIConfig struct {
	Addr string `json:"addr" koanf:"addr"`
	// Token, when set, is required as a bearer token on every request.
	Token string `json:"token" koanf:"token"`
}

func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

func (c APIConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	return nil
}
