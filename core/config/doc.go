// Package config provides configuration management for osu-db-tool.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional config.yaml. Every key has a default taken from
// the `default` struct tag, so the tool runs with no configuration at all.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Log: Logging level and format
//   - Database: Optional rating failure ledger (sqlite or MySQL)
//   - Storage: Optional S3/MinIO snapshot mirror
//   - Metrics: Optional Prometheus textfile export
//   - Osu: Local installation settings (cfg username)
//   - Rating, Replay, Collection: Per-command settings
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Rating.Workers)
package config
