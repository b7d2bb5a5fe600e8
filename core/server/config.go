// Package server holds configuration for the HTTP server.
package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3000"`
	// ApiKey is the secret key required to access the API.
	// When empty, the API is open.
	ApiKey string `mapstructure:"api_key" default:""`
}

// Protected reports whether API-key authentication is enabled.
func (c Config) Protected() bool {
	return c.ApiKey != ""
}
