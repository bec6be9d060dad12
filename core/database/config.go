package database

// Config holds configuration for the rating failure ledger database.
type Config struct {
	// Driver is the database driver (mysql, sqlite). Empty disables the ledger.
	Driver string `mapstructure:"driver" default:""`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:"osu-db-tool.sqlite"`
	// TimeoutSeconds bounds connection setup and I/O for mysql.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Enabled reports whether a database is configured.
func (c Config) Enabled() bool {
	return c.Driver != ""
}
