package entropy

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/tarm/serial"
)

// SerialConfig describes a hardware RNG attached over USB serial
// (e.g. a TrueRNG device on /dev/ttyACM0 or COM3).
type SerialConfig struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration
}

// NewSerial opens the serial port and returns it as a Source.
func NewSerial(cfg SerialConfig) (Source, error) {
	if cfg.Device == "" {
		return nil, errors.New("serial device name is required")
	}
	if cfg.Baud <= 0 {
		return nil, errors.Errorf("invalid serial baud rate: %d", cfg.Baud)
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		Size:        8, // hard coded by the library
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening serial RNG %s", cfg.Device)
	}

	return FromReader(port, fmt.Sprintf("Hardware RNG (%s)", cfg.Device)), nil
}
