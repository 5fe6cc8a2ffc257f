package mameduino

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKeySingleCharacter(t *testing.T) {
	for c := 0x21; c <= 0x7E; c++ {
		token := string(rune(c))
		code, err := ResolveKey(token)
		require.NoError(t, err, token)
		assert.Equal(t, byte(c), code, token)
	}
}

func TestResolveKeyNamedKeys(t *testing.T) {
	for name, want := range keyNames {
		code, err := ResolveKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, code, name)
	}

	tests := map[string]byte{
		"UP":     0xDA,
		"LEFT":   0xD8,
		"F1":     0xC2,
		"F12":    0xCD,
		"RETURN": 0xB0,
		"LCTRL":  0x80,
		"CLEAR":  0x00,
		"RESET":  0xFE,
		"POWER":  0xFF,
	}
	for name, want := range tests {
		code, err := ResolveKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, code, name)
	}
}

func TestResolveKeyRejectsUnknown(t *testing.T) {
	for _, token := range []string{"up", "F13", "SPACE", "ab", ""} {
		_, err := ResolveKey(token)
		assert.ErrorIs(t, err, ErrUnknownKey, "token %q", token)
	}
}

func TestResolveKeysStopsAtFirstBadToken(t *testing.T) {
	_, err := ResolveKeys([]string{"a", "NOPE", "ALSO_BAD"})
	require.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "NOPE")
	assert.NotContains(t, err.Error(), "ALSO_BAD")
}

func TestKeyNamesOrdered(t *testing.T) {
	names := KeyNames()
	require.Len(t, names, len(keyNames))
	assert.Equal(t, "CLEAR", names[0].Name)
	assert.Equal(t, "POWER", names[len(names)-1].Name)
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1].Code, names[i].Code)
	}
}
