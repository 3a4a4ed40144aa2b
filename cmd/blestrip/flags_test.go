package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/blestrip/internal/config"
)

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--driver", "console", "--length", "24", "--log-level", "debug"}))

	cfg := config.Default()
	cfg.Transport.Name = "from-file"
	require.NoError(t, applyFlags(cfg, cmd.Flags()))

	assert.Equal(t, config.DriverConsole, cfg.Strip.Driver)
	assert.Equal(t, 24, cfg.Strip.Length)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "from-file", cfg.Transport.Name)
	assert.Equal(t, 48, cfg.Strip.Pin)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestFlagsTransportAndAddr(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--transport=ws", "--addr=127.0.0.1:9000", "--name=bench", "--pin=5", "--channel=SPI0.0"}))

	cfg := config.Default()
	require.NoError(t, applyFlags(cfg, cmd.Flags()))
	assert.Equal(t, config.TransportWS, cfg.Transport.Kind)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, "bench", cfg.Transport.Name)
	assert.Equal(t, 5, cfg.Strip.Pin)
	assert.Equal(t, "SPI0.0", cfg.Strip.Channel)
}

func TestOpenDriver(t *testing.T) {
	d, err := openDriver(config.Strip{Driver: config.DriverConsole, Length: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.NoError(t, d.Close())

	_, err = openDriver(config.Strip{Driver: "pwm", Length: 3})
	assert.Error(t, err)

	_, err = openDriver(config.Strip{Driver: config.DriverWS2812, Length: 3})
	assert.Error(t, err)
}
