package replay

// Config holds configuration for replay to beatmap conversion.
type Config struct {
	// FilePrefix is prepended to the original .osu file name.
	FilePrefix string `mapstructure:"file_prefix" default:"awesome "`
	// Output is the path the rewritten replay is saved to, relative to the working directory.
	Output string `mapstructure:"output" default:"awesomereplay.osr"`
	// SongsDir is the beatmap directory. Empty means <osu-path>/Songs.
	SongsDir string `mapstructure:"songs_dir" default:""`
}
