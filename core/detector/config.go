package detector

// Config holds configuration for the external detection service.
type Config struct {
	// Endpoint is the base URL of the detection service.
	Endpoint string `mapstructure:"endpoint" default:"http://localhost:8000"`
	// TimeoutSeconds bounds a single detection call. Video analysis can
	// take a while, hence the generous default.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"120"`
}
