package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" env:"MVT_SERVER_PORT,strict" validate:"gt=0,lte=65535"`
}

// SourceConfig describes where tiles are fetched from
type SourceConfig struct {
	// URLTemplate is a URL or path template with {z}, {x} and {y} placeholders.
	URLTemplate string `yaml:"urlTemplate" env:"MVT_SOURCE_URL_TEMPLATE"`
	TimeoutMS   int    `yaml:"timeoutMS" env:"MVT_SOURCE_TIMEOUT_MS,strict" validate:"gte=0"`
	UserAgent   string `yaml:"userAgent" env:"MVT_SOURCE_USER_AGENT"`
	MaxBytes    int64  `yaml:"maxBytes" env:"MVT_SOURCE_MAX_BYTES,strict" validate:"gte=0"`
}

// DecoderConfig contains the defaults applied to layers that omit them
type DecoderConfig struct {
	DefaultExtent  uint32 `yaml:"defaultExtent" env:"MVT_DECODER_DEFAULT_EXTENT,strict" validate:"gt=0"`
	DefaultVersion uint32 `yaml:"defaultVersion" env:"MVT_DECODER_DEFAULT_VERSION,strict" validate:"oneof=1 2"`
}

// OutputConfig controls the GeoJSON produced for a tile
type OutputConfig struct {
	Pretty        bool     `yaml:"pretty" env:"MVT_OUTPUT_PRETTY"`
	Layers        []string `yaml:"layers" env:"MVT_OUTPUT_LAYERS"`
	LayerProperty string   `yaml:"layerProperty" env:"MVT_OUTPUT_LAYER_PROPERTY"`
	IncludeID     bool     `yaml:"includeID" env:"MVT_OUTPUT_INCLUDE_ID"`
}

// LoggingConfig contains log level and format
type LoggingConfig struct {
	Level  string `yaml:"level" env:"MVT_LOG_LEVEL" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `yaml:"format" env:"MVT_LOG_FORMAT" validate:"oneof=text json"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Source  SourceConfig  `yaml:"source"`
	Decoder DecoderConfig `yaml:"decoder"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}
