package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    Kind
	}{
		{"on", []byte("on"), TurnOn},
		{"off", []byte("off"), TurnOff},
		{"padded off", []byte("  off  "), TurnOff},
		{"newline on", []byte("on\r\n"), TurnOn},
		{"tabs", []byte("\ton\t"), TurnOn},
		{"unicode space", []byte("\u2003off\u00a0"), TurnOff},
		{"upper", []byte("ON"), Unrecognized},
		{"mixed case", []byte("Off"), Unrecognized},
		{"inner space", []byte("o n"), Unrecognized},
		{"empty", []byte{}, Unrecognized},
		{"only space", []byte("   "), Unrecognized},
		{"longer", []byte("on!"), Unrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Kind)
			assert.Equal(t, string(tt.payload), cmd.Raw)
		})
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	for _, p := range [][]byte{
		{0xff, 0xfe, 0xfd},
		{'o', 'n', 0x80},
		{0xc3, 0x28},
	} {
		_, err := Parse(p)
		assert.ErrorIs(t, err, ErrDecode)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "on", TurnOn.String())
	assert.Equal(t, "off", TurnOff.String())
	assert.Equal(t, "unrecognized", Unrecognized.String())
}
