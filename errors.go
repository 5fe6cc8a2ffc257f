package mameduino

import "errors"

// Argument errors; nothing has touched the device when one of these is returned
var (
	ErrDevicePath       = errors.New("first argument must be a serial device path")
	ErrNoCommand        = errors.New("no command given")
	ErrMultipleCommands = errors.New("only one command may be given")
	ErrRejectValue      = errors.New(`coin reject argument must be "on" or "off"`)
	ErrButtonIndex      = errors.New("button index out of range")
	ErrCoinIndex        = errors.New("coin index out of range")
	ErrNoKeys           = errors.New("no key presses specified")
	ErrTooManyKeys      = errors.New("too many keys")
	ErrUnknownKey       = errors.New("unknown key name")
	ErrUnexpectedArg    = errors.New("unexpected argument")
	ErrInvalidCommand   = errors.New("invalid command")
)

// Device errors
var (
	ErrNoDevice        = errors.New("no MAMEduino device found")
	ErrWriteFailed     = errors.New("failed to write to serial port")
	ErrShortWrite      = errors.New("short write to serial port")
	ErrReadFailed      = errors.New("failed to read from serial port")
	ErrDeviceRejected  = errors.New("device rejected the command")
	ErrResponseTimeout = errors.New("timed out waiting for device response")
)

// ErrNotMAMEduino is returned when a device answers a version request with
// something other than the product name
var ErrNotMAMEduino = errors.New("device did not identify as MAMEduino")
