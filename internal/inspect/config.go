package inspect

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so yaml values like "500ms" decode.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds inspector configuration.
type Config struct {
	// WebSocketAddr is the listen address for the websocket/http endpoint.
	WebSocketAddr string `yaml:"websocket_addr"`
	// QUICAddr is the listen address for the QUIC snapshot endpoint; empty
	// disables it.
	QUICAddr string `yaml:"quic_addr"`
	// RefreshInterval bounds how often changed trees are re-broadcast to
	// websocket clients.
	RefreshInterval Duration `yaml:"refresh_interval"`
	// LogLevel is the daemon log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns default inspector configuration.
func DefaultConfig() Config {
	return Config{
		WebSocketAddr:   "127.0.0.1:8099",
		QUICAddr:        "",
		RefreshInterval: Duration(time.Second),
		LogLevel:        "info",
	}
}

// LoadConfig reads a YAML config over the defaults. An empty document yields
// the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	return cfg, nil
}
