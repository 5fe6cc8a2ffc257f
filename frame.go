package mameduino

import "fmt"

// Terminator ends every frame
const Terminator = '\n'

// Index limits for the addressable inputs
const (
	MaxButtonIndex = 4
	MaxCoinIndex   = 2
)

// Frame is one request as it goes over the wire: command byte, optional
// index byte, optional key codes and a single terminator.
type Frame []byte

// Command returns the command the frame carries
func (f Frame) Command() Command {
	if len(f) == 0 {
		return Invalid
	}
	for c := SetCoinReject; c <= CheckVersion; c++ {
		if b, _ := c.Byte(); b == f[0] {
			return c
		}
	}
	return Invalid
}

func (f Frame) String() string {
	return fmt.Sprintf("% X", []byte(f))
}

func newFrame(c Command, payload ...byte) (Frame, error) {
	b, ok := c.Byte()
	if !ok {
		return nil, ErrInvalidCommand
	}
	frame := make(Frame, 0, len(payload)+2)
	frame = append(frame, b)
	frame = append(frame, payload...)
	return append(frame, Terminator), nil
}

// RejectFrame builds a SetCoinReject request from "on" or "off"
func RejectFrame(value string) (Frame, error) {
	switch value {
	case "on":
		return newFrame(SetCoinReject, 1)
	case "off":
		return newFrame(SetCoinReject, 0)
	default:
		return nil, fmt.Errorf("%w, got %q", ErrRejectValue, value)
	}
}

// ButtonFrame builds a SetButtonShort or SetButtonLong request
func ButtonFrame(long bool, button int, keys []string) (Frame, error) {
	if button < 0 || button > MaxButtonIndex {
		return nil, fmt.Errorf("%w: must be 0-%d, got %d", ErrButtonIndex, MaxButtonIndex, button)
	}
	codes, err := ResolveKeys(keys)
	if err != nil {
		return nil, err
	}
	c := SetButtonShort
	if long {
		c = SetButtonLong
	}
	return newFrame(c, append([]byte{byte(button)}, codes...)...)
}

// CoinFrame builds a SetCoin request
func CoinFrame(coin int, keys []string) (Frame, error) {
	if coin < 0 || coin > MaxCoinIndex {
		return nil, fmt.Errorf("%w: must be 0-%d, got %d", ErrCoinIndex, MaxCoinIndex, coin)
	}
	codes, err := ResolveKeys(keys)
	if err != nil {
		return nil, err
	}
	return newFrame(SetCoin, append([]byte{byte(coin)}, codes...)...)
}

// DumpFrame builds a DumpConfig request
func DumpFrame() Frame {
	f, _ := newFrame(DumpConfig)
	return f
}

// VersionFrame builds a CheckVersion request
func VersionFrame() Frame {
	f, _ := newFrame(CheckVersion)
	return f
}
