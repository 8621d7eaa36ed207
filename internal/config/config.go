package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Echo   EchoConfig   `yaml:"echo"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds the listener and per-connection transport settings.
type ServerConfig struct {
	Port            string   `yaml:"port"`
	ReadBufferSize  int      `yaml:"read_buffer_size"`
	WriteBufferSize int      `yaml:"write_buffer_size"`
	MaxMessageSize  int64    `yaml:"max_message_size"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	PongWait        Duration `yaml:"pong_wait"`
	PingPeriod      Duration `yaml:"ping_period"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	EnablePprof     bool     `yaml:"enable_pprof"`
	PprofPort       string   `yaml:"pprof_port"`
}

// EchoConfig selects the response policy for data frames.
type EchoConfig struct {
	// Prefix is prepended to every echoed text payload. Empty means
	// verbatim echo, which is the default.
	Prefix string `yaml:"prefix"`
	// DropBinary silently ignores binary frames instead of forwarding them.
	DropBinary bool `yaml:"drop_binary"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Duration wraps time.Duration so it can be written as "60s" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			MaxMessageSize:  65536,
			WriteTimeout:    Duration(10 * time.Second),
			PongWait:        Duration(60 * time.Second),
			PingPeriod:      Duration(54 * time.Second),
			ShutdownTimeout: Duration(30 * time.Second),
			PprofPort:       "6060",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}

// Load reads the config file at path on top of the defaults. An empty path
// falls back to ECHOKIT_CONFIG, then to config/echokit.yml if that file
// exists; a missing default file is not an error. ECHOKIT_PORT overrides the
// listen port last.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("ECHOKIT_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = "config/echokit.yml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Default path, no file: run on defaults.
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if port := os.Getenv("ECHOKIT_PORT"); port != "" {
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the rest of the server assumes.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("server.port %q is not a port number in range 1-65535", c.Server.Port)
	}
	if c.Server.MaxMessageSize <= 0 {
		return fmt.Errorf("server.max_message_size must be positive, got %d", c.Server.MaxMessageSize)
	}
	if c.Server.PingPeriod.Std() >= c.Server.PongWait.Std() {
		return fmt.Errorf("server.ping_period (%s) must be shorter than server.pong_wait (%s)",
			c.Server.PingPeriod.Std(), c.Server.PongWait.Std())
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format %q is not console or json", c.Log.Format)
	}
	return nil
}
