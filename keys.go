package mameduino

import (
	"fmt"
	"sort"
)

// Key codes understood by the firmware. Values above 0x7F follow the Arduino
// Keyboard library; RESET and POWER are handled by the adapter itself and
// pulse the cabinet lines instead of sending a key.
const (
	KeyClear byte = 0x00

	KeyLeftCtrl   byte = 0x80
	KeyLeftShift  byte = 0x81
	KeyLeftAlt    byte = 0x82
	KeyLeftGUI    byte = 0x83
	KeyRightCtrl  byte = 0x84
	KeyRightShift byte = 0x85
	KeyRightAlt   byte = 0x86
	KeyRightGUI   byte = 0x87

	KeyReturn    byte = 0xB0
	KeyEsc       byte = 0xB1
	KeyBackspace byte = 0xB2
	KeyTab       byte = 0xB3
	KeyF1        byte = 0xC2
	KeyInsert    byte = 0xD1
	KeyHome      byte = 0xD2
	KeyPageUp    byte = 0xD3
	KeyDelete    byte = 0xD4
	KeyEnd       byte = 0xD5
	KeyPageDown  byte = 0xD6
	KeyRight     byte = 0xD7
	KeyLeft      byte = 0xD8
	KeyDown      byte = 0xD9
	KeyUp        byte = 0xDA

	KeyReset byte = 0xFE
	KeyPower byte = 0xFF
)

// MaxKeys is the number of key codes one button or coin can send
const MaxKeys = 6

var keyNames = map[string]byte{
	"CLEAR":     KeyClear,
	"LCTRL":     KeyLeftCtrl,
	"LSHIFT":    KeyLeftShift,
	"LALT":      KeyLeftAlt,
	"LGUI":      KeyLeftGUI,
	"RCTRL":     KeyRightCtrl,
	"RSHIFT":    KeyRightShift,
	"RALT":      KeyRightAlt,
	"RGUI":      KeyRightGUI,
	"UP":        KeyUp,
	"DOWN":      KeyDown,
	"LEFT":      KeyLeft,
	"RIGHT":     KeyRight,
	"BACKSPACE": KeyBackspace,
	"TAB":       KeyTab,
	"RETURN":    KeyReturn,
	"ESC":       KeyEsc,
	"INSERT":    KeyInsert,
	"DELETE":    KeyDelete,
	"PAGEUP":    KeyPageUp,
	"PAGEDOWN":  KeyPageDown,
	"HOME":      KeyHome,
	"END":       KeyEnd,
	"F1":        KeyF1,
	"F2":        KeyF1 + 1,
	"F3":        KeyF1 + 2,
	"F4":        KeyF1 + 3,
	"F5":        KeyF1 + 4,
	"F6":        KeyF1 + 5,
	"F7":        KeyF1 + 6,
	"F8":        KeyF1 + 7,
	"F9":        KeyF1 + 8,
	"F10":       KeyF1 + 9,
	"F11":       KeyF1 + 10,
	"F12":       KeyF1 + 11,
	"RESET":     KeyReset,
	"POWER":     KeyPower,
}

// KeyName pairs a symbolic key name with its code
type KeyName struct {
	Name string
	Code byte
}

// ResolveKey encodes a single key token. A one-byte token is sent as is,
// anything longer must be a known key name.
func ResolveKey(token string) (byte, error) {
	if len(token) == 1 {
		return token[0], nil
	}
	code, ok := keyNames[token]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownKey, token)
	}
	return code, nil
}

// ResolveKeys encodes 1 to MaxKeys key tokens, stopping at the first bad one
func ResolveKeys(tokens []string) ([]byte, error) {
	if len(tokens) == 0 {
		return nil, ErrNoKeys
	}
	if len(tokens) > MaxKeys {
		return nil, fmt.Errorf("%w: got %d, at most %d are supported", ErrTooManyKeys, len(tokens), MaxKeys)
	}

	codes := make([]byte, 0, len(tokens))
	for _, token := range tokens {
		code, err := ResolveKey(token)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// KeyNames returns the named key table ordered by code
func KeyNames() []KeyName {
	names := make([]KeyName, 0, len(keyNames))
	for name, code := range keyNames {
		names = append(names, KeyName{Name: name, Code: code})
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i].Code != names[j].Code {
			return names[i].Code < names[j].Code
		}
		return names[i].Name < names[j].Name
	})
	return names
}
