package mameduino

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/allbin/mameduino/internal/serial"
)

// ProductName is how the firmware introduces itself in a version response
const ProductName = "MAMEduino"

// Defaults for the response wait loop
const (
	DefaultTimeout      = 200 * time.Millisecond
	DefaultPollInterval = 10 * time.Millisecond
)

// Port is the connection a Client talks through
type Port interface {
	io.ReadWriteCloser
}

// inputFlusher is implemented by ports that can drop stale input
type inputFlusher interface {
	FlushInput() error
}

// OpenSerial opens path as a 38400 8N1 raw serial line
func OpenSerial(path string) (Port, error) {
	return serial.Open(path)
}

// Response is what the device sent back for one frame
type Response struct {
	Command Command
	State   ScanState
	Info    []byte
	// Raw holds every byte received, marker included
	Raw     []byte
}

// Text returns the informational bytes as text without trailing line breaks
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimRight(string(r.Info), "\r\n")
}

// Client sends frames to one device and waits for its answer
type Client struct {
	port    Port
	path    string
	timeout time.Duration
	poll    time.Duration
	logger  *zap.Logger
	sleep   func(ctx context.Context, d time.Duration) error

	identity string
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets how long to wait for a response marker
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithPollInterval sets the pause between two reads of the port
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.poll = d
		}
	}
}

// WithLogger sets the logger used for frame and response tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient wraps an open port. The client owns the port from now on.
func NewClient(path string, port Port, opts ...Option) *Client {
	c := &Client{
		port:    port,
		path:    path,
		timeout: DefaultTimeout,
		poll:    DefaultPollInterval,
		logger:  zap.NewNop(),
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("port", path))
	return c
}

// Path returns the device path the client talks to
func (c *Client) Path() string {
	return c.path
}

// Identity returns the text of the last successful Identify
func (c *Client) Identity() string {
	return c.identity
}

// Close restores the port's line settings and releases it
func (c *Client) Close() error {
	err := c.port.Close()
	if err != nil {
		c.logger.Warn("close port", zap.Error(err))
	}
	return err
}

// Send writes frame in one call and waits for the device's verdict.
//
// A short or failed write returns ErrShortWrite or ErrWriteFailed without
// reading. A negative marker returns ErrDeviceRejected and no marker within
// the timeout returns ErrResponseTimeout; both still return the response
// collected so far.
func (c *Client) Send(ctx context.Context, frame Frame) (*Response, error) {
	if f, ok := c.port.(inputFlusher); ok {
		if err := f.FlushInput(); err != nil {
			c.logger.Debug("flush input", zap.Error(err))
		}
	}

	c.logger.Debug("write frame",
		zap.Stringer("command", frame.Command()),
		zap.Stringer("frame", frame))

	n, err := c.port.Write(frame)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrWriteFailed, c.path, err)
	}
	if n != len(frame) {
		return nil, fmt.Errorf("%w %s: wrote %d of %d bytes", ErrShortWrite, c.path, n, len(frame))
	}

	scanner := NewResponseScanner(c.timeout)
	resp := &Response{Command: frame.Command()}
	chunk := make([]byte, 64)

	for {
		n, err := c.port.Read(chunk)
		if n > 0 {
			scanner.Write(chunk[:n])
		}
		if err != nil && err != io.EOF {
			resp.Info = bytes.Clone(scanner.Info())
			resp.Raw = bytes.Clone(scanner.Raw())
			return resp, fmt.Errorf("%w %s: %v", ErrReadFailed, c.path, err)
		}

		if !scanner.State().Done() {
			scanner.Wait(c.poll)
		}

		switch scanner.State() {
		case ScanAccepted:
			return c.finish(resp, scanner, nil)
		case ScanRejected:
			return c.finish(resp, scanner, fmt.Errorf("%w: %s", ErrDeviceRejected, frame.Command()))
		case ScanTimedOut:
			return c.finish(resp, scanner, fmt.Errorf("%w after %v", ErrResponseTimeout, c.timeout))
		}

		if err := c.sleep(ctx, c.poll); err != nil {
			return c.finish(resp, scanner, err)
		}
	}
}

func (c *Client) finish(resp *Response, scanner *ResponseScanner, err error) (*Response, error) {
	resp.State = scanner.State()
	resp.Info = bytes.Clone(scanner.Info())
	resp.Raw = bytes.Clone(scanner.Raw())
	c.logger.Debug("response",
		zap.Stringer("state", resp.State),
		zap.String("raw", fmt.Sprintf("% X", scanner.Raw())),
		zap.Error(err))
	return resp, err
}

// Identify sends a version request and checks that the answer starts with
// the product name. The identification text is returned either way.
func (c *Client) Identify(ctx context.Context) (string, error) {
	resp, err := c.Send(ctx, VersionFrame())
	if err != nil {
		return resp.Text(), err
	}
	text := resp.Text()
	if !strings.HasPrefix(text, ProductName) {
		return text, fmt.Errorf("%w: %q", ErrNotMAMEduino, text)
	}
	c.identity = text
	return text, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
