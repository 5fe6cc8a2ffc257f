package mameduino

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/allbin/mameduino/internal/serial"
)

// Opener opens and configures the device at path
type Opener func(path string) (Port, error)

// Detector finds the first MAMEduino among a fixed list of device paths
type Detector struct {
	// Candidates are probed in order; defaults to serial.Candidates()
	Candidates []string
	// Open defaults to OpenSerial
	Open Opener
	// Exists defaults to serial.Exists
	Exists func(path string) bool
	// ClientOptions are applied to every probe client
	ClientOptions []Option
	Logger        *zap.Logger
}

// Detect probes each candidate that exists and returns a client for the
// first one that identifies as a MAMEduino. Candidates that fail are closed
// before the next one is tried; candidates after the match are not touched.
func (d *Detector) Detect(ctx context.Context) (*Client, error) {
	candidates := d.Candidates
	if len(candidates) == 0 {
		candidates = serial.Candidates()
	}
	exists := d.Exists
	if exists == nil {
		exists = serial.Exists
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !exists(path) {
			continue
		}

		client, err := d.Probe(ctx, path)
		if err != nil {
			logger.Debug("probe failed", zap.String("port", path), zap.Error(err))
			continue
		}
		logger.Info("device found", zap.String("port", path))
		return client, nil
	}

	return nil, fmt.Errorf("%w (tried %d candidates)", ErrNoDevice, len(candidates))
}

// Probe opens path and asks it to identify itself. On success the open
// client is returned; otherwise the port has already been closed.
func (d *Detector) Probe(ctx context.Context, path string) (*Client, error) {
	open := d.Open
	if open == nil {
		open = OpenSerial
	}
	port, err := open(path)
	if err != nil {
		return nil, err
	}

	opts := d.ClientOptions
	if d.Logger != nil {
		opts = append(opts[:len(opts):len(opts)], WithLogger(d.Logger))
	}
	client := NewClient(path, port, opts...)

	if _, err := client.Identify(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
