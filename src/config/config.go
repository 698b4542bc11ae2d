// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/lost-woods/entropy/src/entropy"
)

type Config struct {
	Port   string `envconfig:"PORT" default:"777"`
	APIKey string `envconfig:"API_KEY"`

	// Source selects the entropy backend: system, mock or serial.
	Source   string `envconfig:"ENTROPY_SOURCE" default:"system"`
	MockSeed uint64 `envconfig:"MOCK_SEED" default:"42"`

	SerialDevice    string `envconfig:"SERIAL_DEVICE_NAME"`
	SerialBaud      int    `envconfig:"SERIAL_BAUD_RATE" default:"9600"`
	SerialTimeoutMS int    `envconfig:"SERIAL_READ_TIMEOUT" default:"1000"`

	HealthIntervalMS  int `envconfig:"RNG_HEALTH_INTERVAL" default:"10000"`
	DefaultSampleSize int `envconfig:"DEFAULT_SAMPLE_SIZE" default:"65536"`
	MaxSampleSize     int `envconfig:"MAX_SAMPLE_SIZE" default:"4194304"`
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, errors.Wrap(err, "loading configuration")
	}
	if c.DefaultSampleSize < 1 || c.MaxSampleSize < c.DefaultSampleSize {
		return Config{}, errors.Errorf("invalid sample size bounds: default=%d max=%d",
			c.DefaultSampleSize, c.MaxSampleSize)
	}
	return c, nil
}

func (c Config) HealthInterval() time.Duration {
	return time.Duration(c.HealthIntervalMS) * time.Millisecond
}

// NewSource builds the configured entropy source, wrapped for concurrent
// use.
func (c Config) NewSource() (entropy.Source, error) {
	var (
		src entropy.Source
		err error
	)

	switch c.Source {
	case "system":
		src = entropy.NewSystem()
	case "mock":
		src = entropy.NewMock(c.MockSeed)
	case "serial":
		src, err = entropy.NewSerial(entropy.SerialConfig{
			Device:      c.SerialDevice,
			Baud:        c.SerialBaud,
			ReadTimeout: time.Duration(c.SerialTimeoutMS) * time.Millisecond,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unknown entropy source %q (want system, mock or serial)", c.Source)
	}

	return entropy.NewLocked(src), nil
}
