// Package nrz drives WS281x strips from an SPI port using periph.io's NRZ encoder.
package nrz

import (
	"fmt"
	"io"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"

	"github.com/coreman2200/blestrip/internal/pixel"
	"github.com/coreman2200/blestrip/internal/strip"
)

// DefaultFreq is the WS2812 data rate.
const DefaultFreq = 800 * physic.KiloHertz

type SPI struct {
	mu     sync.Mutex
	dev    *nrzled.Dev
	closer io.Closer
	count  int
	rgb    []byte
}

// Open initializes the host drivers and opens the named SPI port ("" picks
// the first one registered), e.g. "/dev/spidev0.0" or "SPI0.0".
func Open(channel string, count int, freq physic.Frequency) (*SPI, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("nrz: host init: %w", err)
	}
	port, err := spireg.Open(channel)
	if err != nil {
		return nil, fmt.Errorf("nrz: open spi port %q: %w", channel, err)
	}
	s, err := New(port, count, freq)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already opened port. If port implements io.Closer it is closed
// by Close.
func New(port spi.Port, count int, freq physic.Frequency) (*SPI, error) {
	if count <= 0 {
		return nil, fmt.Errorf("nrz: invalid LED count: %d", count)
	}
	if freq == 0 {
		freq = DefaultFreq
	}
	opts := nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      freq,
	}
	d, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		return nil, fmt.Errorf("nrz: %w", err)
	}
	s := &SPI{
		dev:   d,
		count: count,
		rgb:   make([]byte, pixel.EncodedLen(count)),
	}
	if c, ok := port.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}

func (s *SPI) Len() int { return s.count }

func (s *SPI) String() string {
	if s.dev == nil {
		return "nrz{closed}"
	}
	return s.dev.String()
}

// WriteBlocking sends a G,R,B encoded frame. nrzled takes R,G,B input and
// emits G,R,B itself, so the frame is reordered before the transfer.
func (s *SPI) WriteBlocking(encoded []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dev == nil {
		return strip.ErrClosed
	}
	if err := strip.CheckLength(encoded, s.count); err != nil {
		return err
	}
	grbToRGB(s.rgb, encoded)
	if _, err := s.dev.Write(s.rgb); err != nil {
		return strip.Fault("spi write", err)
	}
	return nil
}

// Close turns every LED off and releases the port.
func (s *SPI) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	err := s.dev.Halt()
	s.dev = nil
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func grbToRGB(dst, src []byte) {
	for i := 0; i+2 < len(src); i += 3 {
		dst[i+0] = src[i+1]
		dst[i+1] = src[i+0]
		dst[i+2] = src[i+2]
	}
}
