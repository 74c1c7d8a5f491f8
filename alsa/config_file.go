package alsa

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the session parameters in a YAML-loadable form for
// embedding programs.
type FileConfig struct {
	// ClientName is the name to open the sequencer session under.
	ClientName string `yaml:"client_name"`
	// PortName is the name of the receiver port to create.
	PortName string `yaml:"port_name"`
	// ConnectTo is the designation of the sender port the session shall try to
	// connect to. Empty means no connection is attempted.
	ConnectTo string `yaml:"connect_to"`
	// MonitorInterval is the period of the connection monitor tick.
	MonitorInterval time.Duration `yaml:"monitor_interval"`
}

// LoadFileConfig reads a FileConfig from a YAML file, applying defaults for
// fields the file leaves unset.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &FileConfig{
		ClientName:      "a2jmidi",
		PortName:        "capture",
		MonitorInterval: DefaultMonitorInterval,
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Options converts the file configuration into session options.
func (fc *FileConfig) Options() []Option {
	return []Option{
		WithMonitorInterval(fc.MonitorInterval),
	}
}
