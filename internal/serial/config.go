package serial

// Config holds the line settings applied when a port is opened
type Config struct {
	BaudRate          int
	StopBits          int
	Parity            Parity
	ReadTimeoutTenths int // VTIME setting in tenths of seconds (0-255)
}

// Option is a functional option for configuring a serial port
type Option func(*Config) error

// DefaultConfig returns 38400 8N1 with reads that never wait
func DefaultConfig() Config {
	return Config{
		BaudRate:          38400,
		StopBits:          1,
		Parity:            ParityNone,
		ReadTimeoutTenths: 0,
	}
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if _, err := getBaudRate(rate); err != nil {
			return err
		}
		c.BaudRate = rate
		return nil
	}
}

// WithStopBits sets the number of stop bits (1 or 2)
func WithStopBits(bits int) Option {
	return func(c *Config) error {
		if bits != 1 && bits != 2 {
			return ErrInvalidConfig
		}
		c.StopBits = bits
		return nil
	}
}

// WithParity sets the parity mode
func WithParity(parity Parity) Option {
	return func(c *Config) error {
		if parity < ParityNone || parity > ParityEven {
			return ErrInvalidConfig
		}
		c.Parity = parity
		return nil
	}
}

// WithReadTimeout sets the read timeout in tenths of seconds (VTIME)
func WithReadTimeout(tenths int) Option {
	return func(c *Config) error {
		if tenths < 0 || tenths > 255 {
			return ErrInvalidConfig
		}
		c.ReadTimeoutTenths = tenths
		return nil
	}
}
