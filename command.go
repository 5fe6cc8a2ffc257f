package mameduino

// Command identifies one request the device understands
type Command int

const (
	Invalid Command = iota
	SetCoinReject
	SetButtonShort
	SetButtonLong
	SetCoin
	DumpConfig
	CheckVersion
)

// commandBytes is the identifying byte sent first in every frame
var commandBytes = [...]byte{
	SetCoinReject:  'R',
	SetButtonShort: 'S',
	SetButtonLong:  'L',
	SetCoin:        'C',
	DumpConfig:     'D',
	CheckVersion:   'V',
}

// Byte returns the command's wire byte and false for Invalid
func (c Command) Byte() (byte, bool) {
	if c <= Invalid || int(c) >= len(commandBytes) {
		return 0, false
	}
	return commandBytes[c], true
}

func (c Command) String() string {
	switch c {
	case SetCoinReject:
		return "set-coin-reject"
	case SetButtonShort:
		return "set-button-short"
	case SetButtonLong:
		return "set-button-long"
	case SetCoin:
		return "set-coin"
	case DumpConfig:
		return "dump-config"
	case CheckVersion:
		return "check-version"
	default:
		return "invalid"
	}
}
