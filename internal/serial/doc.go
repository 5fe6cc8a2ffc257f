// Package serial opens a Linux serial device in raw mode through termios
// ioctls and puts the previous line settings back when the port is closed.
//
//	port, err := serial.Open("/dev/ttyACM0")
//	if err != nil {
//	    return err
//	}
//	defer port.Close()
//
// The default line is 38400 8N1 with VMIN=0 and VTIME=0, so Read returns
// immediately with whatever the device has sent so far. Callers poll.
//
// Open errors wrap ErrOpenFailed or ErrConfigureFailed; use errors.Is to
// tell them apart.
package serial
