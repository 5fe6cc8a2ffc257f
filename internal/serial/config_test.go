package serial

import "testing"

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BaudRate != 38400 {
		t.Errorf("Expected BaudRate 38400, got %d", config.BaudRate)
	}
	if config.StopBits != 1 {
		t.Errorf("Expected StopBits 1, got %d", config.StopBits)
	}
	if config.Parity != ParityNone {
		t.Errorf("Expected Parity None, got %v", config.Parity)
	}
	if config.ReadTimeoutTenths != 0 {
		t.Errorf("Expected ReadTimeoutTenths 0, got %d", config.ReadTimeoutTenths)
	}
}

func TestFunctionalOptions(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr error
		check   func(Config) bool
	}{
		{"baud 9600", WithBaudRate(9600), nil, func(c Config) bool { return c.BaudRate == 9600 }},
		{"baud invalid", WithBaudRate(123456), ErrInvalidBaudRate, nil},
		{"two stop bits", WithStopBits(2), nil, func(c Config) bool { return c.StopBits == 2 }},
		{"three stop bits", WithStopBits(3), ErrInvalidConfig, nil},
		{"even parity", WithParity(ParityEven), nil, func(c Config) bool { return c.Parity == ParityEven }},
		{"unknown parity", WithParity(Parity(7)), ErrInvalidConfig, nil},
		{"read timeout max", WithReadTimeout(255), nil, func(c Config) bool { return c.ReadTimeoutTenths == 255 }},
		{"read timeout negative", WithReadTimeout(-1), ErrInvalidConfig, nil},
		{"read timeout too large", WithReadTimeout(256), ErrInvalidConfig, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			err := tt.opt(&config)
			if err != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if tt.check != nil && !tt.check(config) {
				t.Errorf("Option not applied: %+v", config)
			}
		})
	}
}
