package alsa

import (
	"fmt"
	"time"

	"github.com/zynthbox/a2jmidi/logger"
)

// DefaultMonitorInterval is the default period of the connection monitor.
const DefaultMonitorInterval = 200 * time.Millisecond

// Config represents the configuration parameters for a Session.
type Config struct {
	// monitorInterval defines the period of the connection monitor tick.
	// It also bounds how long Stop and Close may take: the monitor polls its
	// shutdown signal at least once per interval.
	// Defaults to DefaultMonitorInterval.
	monitorInterval time.Duration

	// settleOnActivate indicates whether Activate pauses for one monitor
	// interval before returning, so the first monitor tick is guaranteed to
	// have run. Defaults to true.
	settleOnActivate bool

	// logger provides a logger instance for session events and errors.
	logger logger.Logger
}

// NewConfig creates a new session configuration with optional functional options.
//
// It initializes a Config with default values and then applies the provided
// options. Returns a pointer to the initialized Config and an error if any option
// is invalid.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		monitorInterval:  DefaultMonitorInterval,
		settleOnActivate: true,
		logger:           logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// MonitorInterval returns the configured monitor tick period.
func (cfg *Config) MonitorInterval() time.Duration {
	return cfg.monitorInterval
}

// Logger returns the configured logger.
func (cfg *Config) Logger() logger.Logger {
	return cfg.logger
}

// Option is a functional option for configuring a Session.
type Option interface {
	apply(cfg *Config) error
}

type optFunc func(cfg *Config) error

func (f optFunc) apply(cfg *Config) error {
	return f(cfg)
}

// WithMonitorInterval sets the period of the connection monitor tick.
// The interval must be positive.
func WithMonitorInterval(interval time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if interval <= 0 {
			return fmt.Errorf("monitor interval %v is not positive", interval)
		}
		cfg.monitorInterval = interval

		return nil
	})
}

// WithSettleOnActivate controls whether Activate pauses for one monitor interval
// before returning. Disabling the settle pause is intended for tests that drive
// monitor ticks manually.
func WithSettleOnActivate(settle bool) Option {
	return optFunc(func(cfg *Config) error {
		cfg.settleOnActivate = settle
		return nil
	})
}

// WithLogger sets the logger used by the session.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return fmt.Errorf("logger is nil")
		}
		cfg.logger = l

		return nil
	})
}
