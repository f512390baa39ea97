package domain

import "time"

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendBadger = "badger"
	CacheBackendFile   = "file"
)

// CacheSettings selects and tunes the cache backend.
type CacheSettings struct {
	Backend string        `yaml:"backend" validate:"oneof=memory badger file"`
	Path    string        `yaml:"path" validate:"required_unless=Backend memory"`
	TTL     time.Duration `yaml:"ttl" validate:"gte=0"`
}

// ServerSettings configures the websocket transport.
type ServerSettings struct {
	Addr string `yaml:"addr" validate:"required"`
}

// Trace exporters.
const (
	TraceExporterNone   = "none"
	TraceExporterStdout = "stdout"
)

// TelemetrySettings selects where spans are exported.
type TelemetrySettings struct {
	TraceExporter string `yaml:"trace_exporter" validate:"oneof=none stdout"`
	ServiceName   string `yaml:"service_name" validate:"required"`
}

// Settings is the runtime configuration of the application.
type Settings struct {
	LogLevel   string             `yaml:"log_level" validate:"oneof=debug info warn error"`
	Workers    int                `yaml:"workers" validate:"gte=0"`
	ChunkSize  int                `yaml:"chunk_size" validate:"gte=1"`
	CurvesPath string             `yaml:"curves_path"`
	Cache      CacheSettings      `yaml:"cache"`
	Server     ServerSettings     `yaml:"server"`
	Telemetry  TelemetrySettings  `yaml:"telemetry"`
	Elasticity ElasticitySettings `yaml:"elasticity"`
	Metadata   Metadata           `yaml:"metadata"`
}

// DefaultSettings returns the configuration used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:  "info",
		ChunkSize: DefaultChunkSize,
		Cache: CacheSettings{
			Backend: CacheBackendMemory,
		},
		Server: ServerSettings{
			Addr: ":8080",
		},
		Telemetry: TelemetrySettings{
			TraceExporter: TraceExporterNone,
			ServiceName:   "nanoindent",
		},
		Elasticity: DefaultElasticitySettings(),
		Metadata:   DefaultMetadata(),
	}
}
