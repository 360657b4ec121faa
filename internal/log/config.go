package log

// Config controls level, format and output destinations.
type Config struct {
	Level  string     `mapstructure:"level"`
	Format string     `mapstructure:"format"` // text | json
	File   FileOutput `mapstructure:"file"`
}

// FileOutput enables the rotating file appender in addition to stderr.
type FileOutput struct {
	Enabled bool                   `mapstructure:"enabled"`
	Options map[string]interface{} `mapstructure:"options"`
}

// DefaultConfig logs text to stderr at info level.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "text"}
}
