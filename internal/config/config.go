package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/coreman2200/blestrip/internal/pixel"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Strip drivers.
const (
	DriverSPI     = "spi"
	DriverConsole = "console"
	DriverWS2812  = "ws2812"
)

// Transport kinds.
const (
	TransportBLE = "ble"
	TransportWS  = "ws"
)

// Color is a pixel.Color that reads and writes as "#rrggbb" in YAML.
type Color struct{ pixel.Color }

func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a \"#rrggbb\" string", n.Line)
	}
	v, err := pixel.ParseHex(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	c.Color = v
	return nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

type Strip struct {
	Driver   string `yaml:"driver"`  // spi | console | ws2812
	Length   int    `yaml:"length"`  // pixels
	Channel  string `yaml:"channel"` // SPI port name, "" = first port
	Pin      int    `yaml:"pin"`     // data pin for ws2812
	FreqKHz  int    `yaml:"freq_khz"`
	OnColor  Color  `yaml:"on_color"`
	OffColor Color  `yaml:"off_color"`
}

type Transport struct {
	Kind               string `yaml:"kind"` // ble | ws
	Name               string `yaml:"name"`
	ServiceUUID        string `yaml:"service_uuid"`
	CharacteristicUUID string `yaml:"characteristic_uuid"`
}

type HTTP struct {
	Addr string `yaml:"addr"` // "" disables the HTTP server unless transport is ws
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

type Config struct {
	Strip     Strip     `yaml:"strip"`
	Transport Transport `yaml:"transport"`
	HTTP      HTTP      `yaml:"http"`
	Log       Log       `yaml:"log"`
}

// Default mirrors the reference firmware: 10 pixels, white/black, and its BLE identity.
func Default() *Config {
	return &Config{
		Strip: Strip{
			Driver:   DriverSPI,
			Length:   10,
			Pin:      48,
			FreqKHz:  800,
			OnColor:  Color{pixel.White},
			OffColor: Color{pixel.Black},
		},
		Transport: Transport{
			Kind:               TransportBLE,
			Name:               "ble_esp_prazval",
			ServiceUUID:        "fafafafa-fafa-fafa-fafa-fafafafafafa",
			CharacteristicUUID: "3c9a3f00-8ed3-4bdf-8a39-a01bebede295",
		},
		HTTP: HTTP{Addr: ":8080"},
		Log:  Log{Level: "info", Format: "console"},
	}
}

// Load reads path over Default. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (c *Config) Validate() error {
	if c.Strip.Length < 1 {
		return fmt.Errorf("%w: strip.length must be >= 1, got %d", ErrInvalid, c.Strip.Length)
	}
	switch c.Strip.Driver {
	case DriverSPI, DriverConsole, DriverWS2812:
	default:
		return fmt.Errorf("%w: unknown strip.driver %q", ErrInvalid, c.Strip.Driver)
	}
	if c.Strip.FreqKHz < 0 {
		return fmt.Errorf("%w: strip.freq_khz must not be negative", ErrInvalid)
	}
	switch c.Transport.Kind {
	case TransportBLE:
		if c.Transport.Name == "" {
			return fmt.Errorf("%w: transport.name is required for ble", ErrInvalid)
		}
		if !isUUID(c.Transport.ServiceUUID) {
			return fmt.Errorf("%w: transport.service_uuid %q", ErrInvalid, c.Transport.ServiceUUID)
		}
		if !isUUID(c.Transport.CharacteristicUUID) {
			return fmt.Errorf("%w: transport.characteristic_uuid %q", ErrInvalid, c.Transport.CharacteristicUUID)
		}
	case TransportWS:
		if c.HTTP.Addr == "" {
			return fmt.Errorf("%w: http.addr is required for the ws transport", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown transport.kind %q", ErrInvalid, c.Transport.Kind)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// isUUID accepts only the canonical 8-4-4-4-12 form.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
