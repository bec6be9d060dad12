package rating

// Config holds configuration for the star rating backfill.
type Config struct {
	// Workers is the number of beatmaps evaluated concurrently. 0 uses GOMAXPROCS.
	Workers int `mapstructure:"workers" default:"0"`
	// ProgressEvery is the number of calculated beatmaps between progress lines.
	ProgressEvery int `mapstructure:"progress_every" default:"128"`
	// Mods is the comma separated list of wanted mod combinations.
	Mods string `mapstructure:"mods" default:"NM,HR,DT,HRDT"`
	// Command is the difficulty calculator command line template.
	Command string `mapstructure:"command" default:""`
}
