package serial

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Port represents an open serial device whose original line settings are
// restored on Close
type Port interface {
	Read(buf []byte) (int, error)
	Write(data []byte) (int, error)
	Close() error
	Path() string
	FlushInput() error
}

// port is the concrete implementation of the Port interface
type port struct {
	mu     sync.Mutex
	fd     int
	path   string
	saved  *unix.Termios // line settings captured at open, restored on close
	config Config
	closed bool
}

// Ensure port implements Port interface at compile time
var _ Port = (*port)(nil)

// Parity represents the parity mode
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

var baudRates = map[int]uint32{
	1200:   unix.B1200,
	2400:   unix.B2400,
	4800:   unix.B4800,
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
}

// getBaudRate converts an integer baud rate to the unix constant
func getBaudRate(rate int) (uint32, error) {
	b, ok := baudRates[rate]
	if !ok {
		return 0, ErrInvalidBaudRate
	}
	return b, nil
}

// Open opens the device without becoming its controlling terminal, saves the
// current line settings and switches the line to raw mode.
//
// Errors wrap ErrOpenFailed when the device node cannot be opened and
// ErrConfigureFailed when the line settings cannot be read or applied. In
// both cases nothing is left open.
func Open(device string, opts ...Option) (Port, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	// O_NONBLOCK keeps open from waiting on carrier detect
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailed, device, ErrDeviceNotFound)
		}
		if errors.Is(err, unix.EACCES) {
			return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailed, device, ErrPermissionDenied)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailed, device, err)
	}

	saved, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: get termios: %v", ErrConfigureFailed, device, err)
	}

	if err := configurePort(fd, *saved, config); err != nil {
		unix.IoctlSetTermios(fd, unix.TCSETS, saved)
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigureFailed, device, err)
	}

	return &port{
		fd:     fd,
		path:   device,
		saved:  saved,
		config: config,
	}, nil
}

// configurePort applies raw 8-bit line settings on top of the saved ones
func configurePort(fd int, termios unix.Termios, config Config) error {
	baudRate, err := getBaudRate(config.BaudRate)
	if err != nil {
		return err
	}

	termios.Cflag &^= unix.CSIZE | unix.PARENB | unix.PARODD | unix.CSTOPB | unix.CRTSCTS | unix.CBAUD
	termios.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL | baudRate
	termios.Ispeed = baudRate
	termios.Ospeed = baudRate

	switch config.Parity {
	case ParityOdd:
		termios.Cflag |= unix.PARENB | unix.PARODD
	case ParityEven:
		termios.Cflag |= unix.PARENB
	}
	if config.StopBits == 2 {
		termios.Cflag |= unix.CSTOPB
	}

	termios.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY | unix.ICRNL | unix.INLCR |
		unix.IGNCR | unix.ISTRIP | unix.BRKINT | unix.PARMRK | unix.INPCK
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ICANON | unix.ECHO | unix.ECHOE | unix.ECHONL | unix.ISIG | unix.IEXTEN

	// VMIN=0 with VTIME=0 makes read return whatever is buffered right away
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = uint8(config.ReadTimeoutTenths)

	// TCSETSF discards pending input like tcsetattr(TCSAFLUSH)
	if err := unix.IoctlSetTermios(fd, unix.TCSETSF, &termios); err != nil {
		return fmt.Errorf("set termios: %v", err)
	}

	// Writes must block; reads still return immediately through VMIN/VTIME
	if err := unix.SetNonblock(fd, false); err != nil {
		return fmt.Errorf("clear O_NONBLOCK: %v", err)
	}

	return nil
}

// Path returns the device path the port was opened with
func (p *port) Path() string {
	return p.path
}

// Close restores the line settings captured at open and closes the device
func (p *port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	p.closed = true

	var restoreErr error
	if p.saved != nil {
		if err := unix.IoctlSetTermios(p.fd, unix.TCSETS, p.saved); err != nil {
			restoreErr = fmt.Errorf("restore termios: %v", err)
		}
	}
	return errors.Join(restoreErr, unix.Close(p.fd))
}

// Read reads whatever the device has buffered. It does not wait; a read
// with nothing pending returns 0 and a nil error.
func (p *port) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	n, err := unix.Read(p.fd, buf)
	if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
		return 0, nil
	}
	if n < 0 {
		n = 0
	}
	return n, err
}

// Write writes data to the serial port in a single call
func (p *port) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	n, err := unix.Write(p.fd, data)
	if n < 0 {
		n = 0
	}
	return n, err
}

// FlushInput discards any unread input data
func (p *port) FlushInput() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCFLSH, unix.TCIFLUSH)
}
