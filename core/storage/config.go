package storage

// Config holds configuration for uploaded-media storage.
type Config struct {
	// Driver selects the media backend: "local" or "s3".
	Driver string `mapstructure:"driver" default:"local"`
	// LocalDir is the directory used by the local driver.
	LocalDir string `mapstructure:"local_dir" default:"public/uploads"`
	// PublicBase is the URL prefix media is served under.
	PublicBase string `mapstructure:"public_base" default:"/uploads"`

	// Endpoint is the URL of the S3-compatible storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket to store media in.
	Bucket string `mapstructure:"bucket" default:"spacesavers-media"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverLocal, DriverS3:
		return true
	default:
		return false
	}
}
