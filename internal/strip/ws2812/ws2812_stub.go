//go:build !tinygo

package ws2812

import (
	"errors"
	"fmt"

	"github.com/coreman2200/blestrip/internal/strip"
)

var errUnsupported = errors.New("ws2812 driver not supported on this platform")

type Strip struct{}

func Open(pin int, count int) (*Strip, error) {
	return nil, fmt.Errorf("ws2812 driver requires a tinygo build (pin %d)", pin)
}

func (s *Strip) Len() int { return 0 }

func (s *Strip) WriteBlocking(encoded []byte) error {
	return strip.Fault("ws2812 write", errUnsupported)
}

func (s *Strip) Close() error { return nil }
