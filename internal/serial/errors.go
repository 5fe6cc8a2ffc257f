package serial

import "errors"

var (
	ErrOpenFailed       = errors.New("cannot open serial device")
	ErrConfigureFailed  = errors.New("cannot configure serial device")
	ErrDeviceNotFound   = errors.New("serial device not found")
	ErrPermissionDenied = errors.New("permission denied accessing serial device")
	ErrInvalidBaudRate  = errors.New("invalid baud rate")
	ErrInvalidConfig    = errors.New("invalid serial configuration")
	ErrPortClosed       = errors.New("serial port is closed")
)
