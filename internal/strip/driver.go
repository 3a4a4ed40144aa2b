package strip

import (
	"errors"
	"fmt"

	"github.com/coreman2200/blestrip/internal/pixel"
)

var (
	// ErrFrameLength is returned when an encoded frame is not 3*N bytes.
	ErrFrameLength = errors.New("strip: encoded frame length mismatch")
	// ErrHardwareFault wraps any failure to schedule or complete a transfer.
	ErrHardwareFault = errors.New("strip: hardware fault")
	// ErrClosed is returned by writes after Close.
	ErrClosed = errors.New("strip: driver closed")
)

// Driver owns an LED strip output.
type Driver interface {
	// WriteBlocking sends one encoded frame (G,R,B per pixel) and returns once
	// the transfer has completed or failed. len(encoded) must be 3*Len().
	WriteBlocking(encoded []byte) error
	// Len is the number of pixels on the strip.
	Len() int
	// Close blanks the strip where supported and releases the peripheral.
	Close() error
}

// CheckLength validates an encoded frame against an n-pixel strip.
func CheckLength(encoded []byte, n int) error {
	if want := pixel.EncodedLen(n); len(encoded) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %d pixels", ErrFrameLength, len(encoded), want, n)
	}
	return nil
}

// Fault wraps err as a hardware fault for op.
func Fault(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrHardwareFault, op, err)
}
