package config

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"

	"osu-db-tool/core/database"
	"osu-db-tool/core/logger"
	"osu-db-tool/core/metrics"
	"osu-db-tool/core/storage"
	"osu-db-tool/feature/collection"
	"osu-db-tool/feature/rating"
	"osu-db-tool/feature/replay"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the rating failure ledger.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the snapshot mirror.
	Storage storage.Config `mapstructure:"storage"`
	// Metrics holds configuration for the metrics textfile export.
	Metrics metrics.Config `mapstructure:"metrics"`
	// Osu holds settings describing the local osu! installation.
	Osu OsuConfig `mapstructure:"osu"`
	// Rating holds configuration for the star rating backfill.
	Rating rating.Config `mapstructure:"rating"`
	// Replay holds configuration for replay to beatmap conversion.
	Replay replay.Config `mapstructure:"replay"`
	// Collection holds configuration for collection building.
	Collection collection.Config `mapstructure:"collection"`
}

// OsuConfig describes the local osu! installation.
type OsuConfig struct {
	// Username selects the osu!.<username>.cfg file. Empty means the current OS user.
	Username string `mapstructure:"username" default:""`
}

// LoadConfig loads configuration from environment variables, a .env file and an
// optional config.yaml found in path. Environment variables win over the file.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Map environment variables to nested keys (e.g. RATING_WORKERS -> rating.workers)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
