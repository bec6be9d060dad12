package storage

// Config holds configuration for the snapshot mirror.
type Config struct {
	// Endpoint is the URL of the storage service. Empty disables snapshots.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket to store snapshots in.
	Bucket string `mapstructure:"bucket" default:"osu-snapshots"`
	// Prefix is prepended to every snapshot object key.
	Prefix string `mapstructure:"prefix" default:"snapshots"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Enabled reports whether a storage endpoint is configured.
func (c Config) Enabled() bool {
	return c.Endpoint != ""
}
