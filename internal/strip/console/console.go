// Package console renders strip frames as ANSI blocks on the terminal, for
// running without LEDs attached.
package console

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"sync"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/blestrip/internal/strip"
)

type Strip struct {
	mu     sync.Mutex
	drawer display.Drawer
	out    io.Writer
	count  int
	img    *image.NRGBA
	closed bool
}

func New(count int) (*Strip, error) {
	if count <= 0 {
		return nil, fmt.Errorf("console: invalid LED count: %d", count)
	}
	return &Strip{
		drawer: screen.New(count),
		out:    os.Stdout,
		count:  count,
		img:    image.NewNRGBA(image.Rect(0, 0, count, 1)),
	}, nil
}

func (s *Strip) Len() int { return s.count }

func (s *Strip) WriteBlocking(encoded []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return strip.ErrClosed
	}
	if err := strip.CheckLength(encoded, s.count); err != nil {
		return err
	}
	for x := 0; x < s.count; x++ {
		p := encoded[x*3 : x*3+3]
		s.img.SetNRGBA(x, 0, color.NRGBA{R: p[1], G: p[0], B: p[2], A: 255})
	}
	if err := s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{}); err != nil {
		return strip.Fault("console draw", err)
	}
	fmt.Fprintf(s.out, "\n")
	return nil
}

// Last returns the color of pixel i as last drawn.
func (s *Strip) Last(i int) color.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img.NRGBAAt(i, 0)
}

func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.drawer.Halt()
}
