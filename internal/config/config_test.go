package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/blestrip/internal/pixel"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 10, c.Strip.Length)
	assert.Equal(t, pixel.White, c.Strip.OnColor.Color)
	assert.Equal(t, pixel.Black, c.Strip.OffColor.Color)
	assert.Equal(t, "ble_esp_prazval", c.Transport.Name)
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := writeFile(t, `
strip:
  driver: console
  length: 24
  on_color: "#ff8000"
transport:
  kind: ws
log:
  level: debug
`)
	c, err := Load(p)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, DriverConsole, c.Strip.Driver)
	assert.Equal(t, 24, c.Strip.Length)
	assert.Equal(t, pixel.Color{R: 0xFF, G: 0x80}, c.Strip.OnColor.Color)
	assert.Equal(t, pixel.Black, c.Strip.OffColor.Color, "unset field keeps default")
	assert.Equal(t, TransportWS, c.Transport.Kind)
	assert.Equal(t, ":8080", c.HTTP.Addr)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadBadColor(t *testing.T) {
	p := writeFile(t, "strip:\n  on_color: \"#12\"\n")
	_, err := Load(p)
	assert.Error(t, err)

	p = writeFile(t, "strip:\n  off_color: [1, 2, 3]\n")
	_, err = Load(p)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveThenLoad(t *testing.T) {
	c := Default()
	c.Strip.Length = 60
	c.Strip.OnColor = Color{pixel.Color{R: 1, G: 2, B: 3}}
	p := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(p, c))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "#010203")

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero length", func(c *Config) { c.Strip.Length = 0 }},
		{"negative length", func(c *Config) { c.Strip.Length = -1 }},
		{"unknown driver", func(c *Config) { c.Strip.Driver = "dma" }},
		{"negative freq", func(c *Config) { c.Strip.FreqKHz = -800 }},
		{"unknown transport", func(c *Config) { c.Transport.Kind = "uart" }},
		{"empty ble name", func(c *Config) { c.Transport.Name = "" }},
		{"bad service uuid", func(c *Config) { c.Transport.ServiceUUID = "fafafafa" }},
		{"braced char uuid", func(c *Config) { c.Transport.CharacteristicUUID = "{3c9a3f00-8ed3-4bdf-8a39-a01bebede295}" }},
		{"ws without addr", func(c *Config) { c.Transport.Kind = TransportWS; c.HTTP.Addr = "" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}
