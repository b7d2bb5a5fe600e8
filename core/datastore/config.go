package datastore

// Config holds configuration for the datastore.
type Config struct {
	// Path is the location of the JSON document backing the store.
	Path string `mapstructure:"path" default:"data/db.json"`
}
