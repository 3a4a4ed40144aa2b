//go:build tinygo

// Package ws2812 drives a WS2812 strip from a microcontroller pin with TinyGo.
package ws2812

import (
	"fmt"
	"machine"
	"sync"

	"tinygo.org/x/drivers/ws2812"

	"github.com/coreman2200/blestrip/internal/pixel"
	"github.com/coreman2200/blestrip/internal/strip"
)

type Strip struct {
	mu     sync.Mutex
	dev    ws2812.Device
	count  int
	closed bool
}

// Open configures pin as an output and binds a WS2812 device to it.
func Open(pin int, count int) (*Strip, error) {
	if count <= 0 {
		return nil, fmt.Errorf("ws2812: invalid LED count: %d", count)
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &Strip{dev: ws2812.New(p), count: count}, nil
}

func (s *Strip) Len() int { return s.count }

// WriteBlocking bit-bangs the G,R,B stream as is; the WS2812 expects that order.
func (s *Strip) WriteBlocking(encoded []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return strip.ErrClosed
	}
	if err := strip.CheckLength(encoded, s.count); err != nil {
		return err
	}
	if _, err := s.dev.Write(encoded); err != nil {
		return strip.Fault("ws2812 write", err)
	}
	return nil
}

func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	_, err := s.dev.Write(pixel.Fill(pixel.Black, s.count).Encode())
	return err
}
